// Package interview runs practice interview sessions: question selection,
// body-language sampling, answer analysis and the final report.
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"placementhub/internal/llm"
	"placementhub/internal/logger"

	"go.uber.org/zap"
)

var (
	InterviewTypes = []string{"Technical", "HR", "Managerial", "Behavioral", "Mock Placement"}
	Difficulties   = []string{"Easy", "Medium", "Hard", "Expert"}
	Durations      = []int{5, 10, 15, 30}
	Categories     = []string{"Technical Skills", "Problem Solving", "Communication", "Leadership", "Teamwork", "Scenario-based", "Coding Challenges"}

	DefaultCategories = []string{"Technical Skills", "Communication"}
)

var ErrInvalidConfig = errors.New("invalid interview configuration")

type Config struct {
	InterviewType   string   `json:"interview_type"`
	Difficulty      string   `json:"difficulty"`
	DurationMinutes int      `json:"duration_minutes"`
	Categories      []string `json:"categories"`
}

func oneOf(v string, list []string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Normalize fills defaults and validates c.
func (c *Config) Normalize() error {
	if c.InterviewType == "" {
		c.InterviewType = InterviewTypes[0]
	}
	if c.Difficulty == "" {
		c.Difficulty = "Medium"
	}
	if c.DurationMinutes == 0 {
		c.DurationMinutes = 10
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string{}, DefaultCategories...)
	}
	switch {
	case !oneOf(c.InterviewType, InterviewTypes):
		return fmt.Errorf("%w: interview type %q", ErrInvalidConfig, c.InterviewType)
	case !oneOf(c.Difficulty, Difficulties):
		return fmt.Errorf("%w: difficulty %q", ErrInvalidConfig, c.Difficulty)
	}
	valid := false
	for _, d := range Durations {
		if d == c.DurationMinutes {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: duration %d minutes", ErrInvalidConfig, c.DurationMinutes)
	}
	for _, cat := range c.Categories {
		if !oneOf(cat, Categories) {
			return fmt.Errorf("%w: category %q", ErrInvalidConfig, cat)
		}
	}
	return nil
}

// QuestionCount is one question per minute, between 5 and 10.
func QuestionCount(minutes int) int {
	return max(5, min(minutes, 10))
}

type question struct {
	text  string
	level int // index into Difficulties
}

var bank = map[string][]question{
	"Technical Skills": {
		{"Explain your most challenging project", 0},
		{"Describe your experience with cloud technologies", 0},
		{"How do you stay updated with the latest technologies in your field?", 1},
		{"Explain the difference between a process and a thread.", 1},
		{"How would you design a URL shortening service?", 2},
		{"How would you make a read-heavy service scale to millions of users?", 3},
	},
	"Problem Solving": {
		{"Describe your problem-solving approach", 0},
		{"Describe a challenging technical problem you solved and your approach.", 1},
		{"How would you optimize this algorithm?", 2},
		{"Walk me through debugging an intermittent production failure.", 3},
	},
	"Communication": {
		{"Tell me about yourself.", 0},
		{"How would you explain a complex technical concept to a non-technical stakeholder?", 1},
		{"Describe a time you had to deliver bad news to a stakeholder.", 2},
		{"How do you adapt your message for executives versus engineers?", 3},
	},
	"Leadership": {
		{"Describe a leadership experience", 0},
		{"How do you motivate a team that is behind schedule?", 1},
		{"Tell me about a decision you made that was unpopular.", 2},
		{"How would you turn around a team with low morale and high attrition?", 3},
	},
	"Teamwork": {
		{"Tell me about a time you faced conflict", 0},
		{"Explain a time when you had to work in a team with conflicting opinions.", 1},
		{"How do you handle a teammate who is not contributing?", 2},
		{"Describe how you built consensus across teams with competing goals.", 3},
	},
	"Scenario-based": {
		{"How do you handle pressure?", 0},
		{"How would you prioritize multiple deadlines?", 1},
		{"What would you do if you disagreed with your manager?", 2},
		{"A critical release fails an hour before launch. What do you do?", 3},
	},
	"Coding Challenges": {
		{"Reverse a linked list and explain its complexity.", 0},
		{"Find the first non-repeating character in a string.", 1},
		{"Design an LRU cache with O(1) operations.", 2},
		{"Find the median of two sorted arrays in logarithmic time.", 3},
	},
}

var general = []string{
	"Describe a challenging technical problem you solved and your approach.",
	"How do you stay updated with the latest technologies in your field?",
	"Explain a time when you had to work in a team with conflicting opinions.",
	"What metrics do you use to measure success in your projects?",
	"How would you explain a complex technical concept to a non-technical stakeholder?",
}

// SelectQuestions picks questions from the bank round-robin across the
// configured categories, preferring ones closest to the difficulty.
func SelectQuestions(c Config) []string {
	n := QuestionCount(c.DurationMinutes)
	level := 1
	for i, d := range Difficulties {
		if d == c.Difficulty {
			level = i
		}
	}

	queues := make([][]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		var q []string
		// exact level first, then moving away from it
		for dist := 0; dist < len(Difficulties); dist++ {
			for _, item := range bank[cat] {
				if item.level-level == dist || (dist > 0 && level-item.level == dist) {
					q = append(q, item.text)
				}
			}
		}
		queues = append(queues, q)
	}

	out := make([]string, 0, n)
	seen := map[string]bool{}
	for len(out) < n {
		progressed := false
		for i := range queues {
			for len(queues[i]) > 0 && len(out) < n {
				q := queues[i][0]
				queues[i] = queues[i][1:]
				if !seen[q] {
					seen[q] = true
					out = append(out, q)
					progressed = true
					break
				}
			}
		}
		if !progressed {
			break
		}
	}
	for _, q := range general {
		if len(out) >= n {
			break
		}
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

const questionPrompt = `Generate %d interview questions for a %s interview at %s difficulty.
Cover these categories: %s.
Return a JSON array of strings and nothing else.`

// GenerateQuestions asks the model for questions when gen is set and falls
// back to the bank.
func GenerateQuestions(ctx context.Context, gen llm.Generator, c Config) []string {
	if gen != nil {
		n := QuestionCount(c.DurationMinutes)
		var qs []string
		err := llm.GenerateJSON(ctx, gen, fmt.Sprintf(questionPrompt, n, c.InterviewType, c.Difficulty, strings.Join(c.Categories, ", ")), &qs)
		if err == nil {
			out := make([]string, 0, n)
			for _, q := range qs {
				if q = strings.TrimSpace(q); q != "" && len(out) < n {
					out = append(out, q)
				}
			}
			if len(out) == n {
				return out
			}
		}
		logger.L.Warn("question generation failed, using bank", zap.Error(err))
	}
	return SelectQuestions(c)
}
