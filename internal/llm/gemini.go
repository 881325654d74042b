// Package llm wraps Gemini for the few places the service asks a model for
// text or structured JSON.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces model output for a prompt. When jsonOnly is set the
// model is asked to answer with a JSON document.
type Generator interface {
	Generate(ctx context.Context, prompt string, jsonOnly bool) (string, error)
}

// Default is nil unless GEMINI_API_KEY is configured; callers fall back to
// local heuristics when it is nil.
var Default Generator

var ErrEmptyResponse = errors.New("empty response from Gemini")

type Gemini struct {
	apiKey string
	model  string
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Generate(ctx context.Context, prompt string, jsonOnly bool) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to init Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	if jsonOnly {
		model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

// GenerateJSON asks g for JSON and decodes the first JSON value found in
// the reply into out.
func GenerateJSON(ctx context.Context, g Generator, prompt string, out any) error {
	raw, err := g.Generate(ctx, prompt, true)
	if err != nil {
		return err
	}
	doc := StripCodeFences(raw)
	if candidate, ok := ExtractFirstJSON(doc); ok {
		doc = candidate
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	return nil
}

// StripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
		// a short first line is a language tag
		if i := strings.IndexByte(s, '\n'); i != -1 {
			first := strings.TrimSpace(s[:i])
			if len(first) > 0 && len(first) < 20 && !strings.ContainsAny(first, "{[") {
				s = s[i+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// ExtractFirstJSON returns the first balanced JSON object or array in s.
func ExtractFirstJSON(s string) (string, bool) {
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	inString, escaped := false, false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
