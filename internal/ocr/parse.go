package ocr

import (
	"regexp"
	"strings"

	"placementhub/internal/models"
)

var (
	rollRe   = regexp.MustCompile(`(?i)\b(?:roll|register|reg\.?|enrol(?:l)?ment)\s*(?:no\.?|number|num|#)?\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-_/]*)`)
	nameRe   = regexp.MustCompile(`(?i)\b(?:student\s*)?name\s*[:\-]?\s*([A-Za-z][A-Za-z .'-]{2,})`)
	courseRe = regexp.MustCompile(`(?i)\b(?:course|programme|program|degree)\s*[:\-]\s*(.+)`)
	yearRe   = regexp.MustCompile(`(?i)\b(?:year\s*of\s*passing|passing\s*year|year)\s*[:\-]?\s*((?:19|20)\d{2})\b`)
)

var institutionWords = []string{"university", "institute", "college", "academy"}

// ParseText pulls certificate fields out of OCR text with line patterns. It
// is used when no language model is configured or the model fails.
func ParseText(raw string) models.ParsedCredential {
	var pc models.ParsedCredential
	lines := strings.Split(raw, "\n")
	for _, ln := range lines {
		l := strings.TrimSpace(ln)
		if pc.RegisterNumber == "" {
			if m := rollRe.FindStringSubmatch(l); m != nil {
				pc.RegisterNumber = strings.TrimSpace(m[1])
			}
		}
		if pc.StudentName == "" {
			if m := nameRe.FindStringSubmatch(l); m != nil {
				pc.StudentName = strings.TrimSpace(m[1])
			}
		}
		if pc.CourseName == "" {
			if m := courseRe.FindStringSubmatch(l); m != nil {
				pc.CourseName = strings.TrimSpace(m[1])
			}
		}
		if pc.YearOfPassing == "" {
			if m := yearRe.FindStringSubmatch(l); m != nil {
				pc.YearOfPassing = m[1]
			}
		}
	}

	// longest line naming an institution
	for _, ln := range lines {
		l := strings.TrimSpace(ln)
		ll := strings.ToLower(l)
		for _, kw := range institutionWords {
			if strings.Contains(ll, kw) {
				if len(l) > len(pc.CollegeName) {
					pc.CollegeName = l
				}
				break
			}
		}
	}
	return pc
}
