package interview

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"placementhub/internal/llm"
)

var ErrEmptyAnswer = errors.New("answer is empty")

type AnswerAnalysis struct {
	WordCount    int             `json:"word_count"`
	STAR         map[string]bool `json:"star"`
	Quantified   bool            `json:"quantified"`
	FillerWords  map[string]int  `json:"filler_words"`
	Score        float64         `json:"score"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
	Suggestions  []string        `json:"suggestions"`
	Narrative    string          `json:"narrative,omitempty"`
}

var starCues = []struct {
	part string
	re   *regexp.Regexp
}{
	{"situation", regexp.MustCompile(`(?i)\b(situation|when i was|during|at my|background|context)\b`)},
	{"task", regexp.MustCompile(`(?i)\b(task|responsible for|my role|goal|needed to|had to|objective)\b`)},
	{"action", regexp.MustCompile(`(?i)\bi (decided|implemented|built|led|created|designed|developed|organized|proposed|wrote|worked)\b`)},
	{"result", regexp.MustCompile(`(?i)\b(result|outcome|achieved|improved|increased|reduced|led to|saved)\b`)},
}

var (
	fillerRe  = regexp.MustCompile(`(?i)\b(um+|uh+|ah+|er+|you know|basically|literally|actually|kind of|sort of)\b`)
	numberRe  = regexp.MustCompile(`\d`)
	wordSplit = regexp.MustCompile(`\s+`)
)

// AnalyzeAnswer scores a typed answer on length, STAR structure,
// quantified results and filler words.
func AnalyzeAnswer(answer string) AnswerAnalysis {
	a := AnswerAnalysis{STAR: map[string]bool{}, FillerWords: map[string]int{}}
	answer = strings.TrimSpace(answer)
	if answer != "" {
		a.WordCount = len(wordSplit.Split(answer, -1))
	}

	switch {
	case a.WordCount >= 80 && a.WordCount <= 300:
		a.Score += 30
		a.Strengths = append(a.Strengths, "Answer length is well suited to an interview")
	case a.WordCount > 300:
		a.Score += 20
		a.Improvements = append(a.Improvements, "Answer is long; keep it under two minutes")
	case a.WordCount >= 30:
		a.Score += 25
		a.Improvements = append(a.Improvements, "Add more detail and context about your role")
	default:
		a.Score += 10
		a.Improvements = append(a.Improvements, "Answer is too short; expand with a concrete example")
	}

	var missing []string
	for _, c := range starCues {
		a.STAR[c.part] = c.re.MatchString(answer)
		if a.STAR[c.part] {
			a.Score += 10
		} else {
			missing = append(missing, c.part)
		}
	}
	if len(missing) == 0 {
		a.Strengths = append(a.Strengths, "Clear STAR structure")
	} else {
		a.Suggestions = append(a.Suggestions, "Use the STAR method; missing: "+strings.Join(missing, ", "))
	}

	a.Quantified = numberRe.MatchString(answer)
	if a.Quantified {
		a.Score += 15
		a.Strengths = append(a.Strengths, "Good use of specific, measurable outcomes")
	} else {
		a.Improvements = append(a.Improvements, "Include more quantifiable results")
		a.Suggestions = append(a.Suggestions, "Include specific metrics or outcomes")
	}

	fillers := 0
	for _, m := range fillerRe.FindAllString(answer, -1) {
		a.FillerWords[strings.ToLower(m)]++
		fillers++
	}
	a.Score += float64(max(0, 15-3*fillers))
	if fillers > 0 {
		a.Improvements = append(a.Improvements, fmt.Sprintf("Reduce filler words (%d found)", fillers))
	}
	if a.WordCount == 0 {
		a.Score = 0
	}
	return a
}

const answerPrompt = `You are an interview coach. Give three short sentences of feedback on this answer.
Question: %s
Answer: %s`

// Coach appends a model-written narrative to a when gen is set.
func Coach(ctx context.Context, gen llm.Generator, question, answer string, a *AnswerAnalysis) {
	if gen == nil {
		return
	}
	if out, err := gen.Generate(ctx, fmt.Sprintf(answerPrompt, question, answer), false); err == nil {
		a.Narrative = strings.TrimSpace(out)
	}
}
