// Package resume builds ATS-oriented resumes and compares them with job
// descriptions.
package resume

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"placementhub/internal/jobparser"
	"placementhub/internal/llm"
	"placementhub/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrMissingField    = errors.New("name, skills, experience and education are required")
	ErrUnknownTemplate = errors.New("unknown resume template")
)

// Templates lists the supported layouts; the first is the default.
var Templates = []string{"professional", "modern", "creative", "minimalist"}

type Input struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	TargetRole      string   `json:"target_role"`
	CurrentRole     string   `json:"current_role"`
	YearsExperience int      `json:"years_experience"`
	EducationLevel  string   `json:"education_level"`
	Skills          []string `json:"skills"`
	Experience      string   `json:"experience"`
	Education       string   `json:"education"`
	JobDescription  string   `json:"job_description"`
	Template        string   `json:"template"`
}

type Resume struct {
	Name       string              `json:"name"`
	Template   string              `json:"template"`
	Summary    string              `json:"summary"`
	Skills     map[string][]string `json:"skills"`
	Experience []string            `json:"experience"`
	Education  []string            `json:"education"`
	ATS        ATSResult           `json:"ats_score"`
	Text       string              `json:"text"`
}

// SplitSkills splits a comma separated skill list.
func SplitSkills(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Build assembles the resume sections. gen may be nil, in which case the
// summary comes from a template.
func Build(ctx context.Context, gen llm.Generator, in Input) (*Resume, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Skills) == 0 || strings.TrimSpace(in.Experience) == "" || strings.TrimSpace(in.Education) == "" {
		return nil, ErrMissingField
	}
	tpl := strings.ToLower(strings.TrimSpace(in.Template))
	if tpl == "" {
		tpl = Templates[0]
	}
	if !validTemplate(tpl) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, in.Template)
	}

	r := &Resume{
		Name:       in.Name,
		Template:   tpl,
		Skills:     jobparser.Categorize(in.Skills),
		Experience: Bullets(in.Experience),
		Education:  lines(in.Education),
	}
	r.Summary = summary(ctx, gen, in)
	r.ATS = Score(in, r.Experience, r.Skills)
	r.Text = Render(r)
	return r, nil
}

func validTemplate(t string) bool {
	for _, v := range Templates {
		if v == t {
			return true
		}
	}
	return false
}

const summaryPrompt = `Write a three sentence professional summary for an ATS-optimized resume.
Target role: %s
Current role: %s
Years of experience: %d
Skills: %s
Experience: %s
Return only the summary text.`

func summary(ctx context.Context, gen llm.Generator, in Input) string {
	if gen != nil {
		prompt := fmt.Sprintf(summaryPrompt, in.TargetRole, in.CurrentRole, in.YearsExperience, strings.Join(in.Skills, ", "), in.Experience)
		out, err := gen.Generate(ctx, prompt, false)
		if err == nil && strings.TrimSpace(out) != "" {
			return strings.TrimSpace(out)
		}
		logger.L.Warn("resume summary generation failed, using template", zap.Error(err))
	}
	return templateSummary(in)
}

func templateSummary(in Input) string {
	role := in.TargetRole
	if role == "" {
		role = in.CurrentRole
	}
	if role == "" {
		role = "professional"
	}
	top := in.Skills
	if len(top) > 3 {
		top = top[:3]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is an aspiring %s", in.Name, role)
	if in.YearsExperience > 0 {
		fmt.Fprintf(&sb, " with %d years of experience", in.YearsExperience)
	}
	fmt.Fprintf(&sb, ", skilled in %s.", strings.Join(top, ", "))
	if in.EducationLevel != "" {
		fmt.Fprintf(&sb, " Holds a %s degree", in.EducationLevel)
		sb.WriteString(" and is eager to deliver measurable results.")
	} else {
		sb.WriteString(" Eager to deliver measurable results.")
	}
	return sb.String()
}

var bulletTrim = regexp.MustCompile(`^[\s\-*•·]+`)

// Bullets splits free text into one bullet per line or sentence.
func Bullets(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = bulletTrim.ReplaceAllString(ln, "")
		for _, s := range strings.Split(ln, ". ") {
			s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
			if s == "" {
				continue
			}
			out = append(out, strings.ToUpper(s[:1])+s[1:])
		}
	}
	return out
}

func lines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(bulletTrim.ReplaceAllString(ln, "")); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
