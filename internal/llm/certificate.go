package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"placementhub/internal/models"
)

var ErrNoRegisterNumber = errors.New("register number not found")

const certificatePrompt = `You are an expert data extraction assistant. Your job is to extract specific fields from the following raw text of an academic certificate or marksheet and return the data in a clean JSON format.

Here are the rules:
1. The required fields are: "register_number", "student_name", "course_name", "year_of_passing", and "college_name".
2. If a field cannot be found in the text, its value in the JSON must be null.
3. Your entire response must be ONLY the JSON object. Do not include any explanations, apologies, or any text before or after the JSON.
4. Clean the extracted data by removing any unnecessary newline characters or extra whitespace.

Here is the raw text:
"""
%s
"""`

// ParseCertificate extracts certificate fields from OCR text with g.
func ParseCertificate(ctx context.Context, g Generator, ocrText string) (models.ParsedCredential, error) {
	var out models.ParsedCredential

	// nulls are allowed, so decode loosely first
	var tmp map[string]any
	if err := GenerateJSON(ctx, g, fmt.Sprintf(certificatePrompt, ocrText), &tmp); err != nil {
		return out, err
	}
	get := func(keys ...string) string {
		for _, k := range keys {
			v, ok := tmp[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case string:
				return strings.TrimSpace(t)
			default:
				b, _ := json.Marshal(t)
				return strings.TrimSpace(string(b))
			}
		}
		return ""
	}

	out.RegisterNumber = get("register_number", "roll_number")
	out.StudentName = get("student_name")
	out.CourseName = get("course_name")
	out.YearOfPassing = get("year_of_passing")
	out.CollegeName = get("college_name", "university_name")

	if out.RegisterNumber == "" {
		return out, ErrNoRegisterNumber
	}
	return out, nil
}
