package interview

import (
	"context"
	"testing"
	"time"

	"placementhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionCount(t *testing.T) {
	assert.Equal(t, 5, QuestionCount(5))
	assert.Equal(t, 10, QuestionCount(10))
	assert.Equal(t, 10, QuestionCount(30))
	assert.Equal(t, 5, QuestionCount(1))
}

func TestNormalize(t *testing.T) {
	c := Config{}
	require.NoError(t, c.Normalize())
	assert.Equal(t, "Technical", c.InterviewType)
	assert.Equal(t, "Medium", c.Difficulty)
	assert.Equal(t, 10, c.DurationMinutes)
	assert.Equal(t, DefaultCategories, c.Categories)

	for _, bad := range []Config{
		{InterviewType: "Casual"},
		{Difficulty: "Trivial"},
		{DurationMinutes: 7},
		{Categories: []string{"Cooking"}},
	} {
		assert.ErrorIs(t, bad.Normalize(), ErrInvalidConfig)
	}
}

func TestSelectQuestions(t *testing.T) {
	c := Config{Difficulty: "Easy", DurationMinutes: 15, Categories: []string{"Technical Skills", "Communication"}}
	require.NoError(t, c.Normalize())

	qs := SelectQuestions(c)
	require.Len(t, qs, 10)
	// easy questions of each category come first, alternating
	assert.Equal(t, "Explain your most challenging project", qs[0])
	assert.Equal(t, "Tell me about yourself.", qs[1])

	seen := map[string]bool{}
	for _, q := range qs {
		assert.False(t, seen[q], "duplicate %q", q)
		seen[q] = true
	}
}

func TestSelectQuestionsFillsFromGeneral(t *testing.T) {
	c := Config{DurationMinutes: 30, Categories: []string{"Coding Challenges"}}
	require.NoError(t, c.Normalize())
	qs := SelectQuestions(c)
	// four bank questions plus general ones
	require.Len(t, qs, 9)
	assert.Equal(t, "Find the first non-repeating character in a string.", qs[0])
}

type listGen struct{ reply string }

func (g listGen) Generate(context.Context, string, bool) (string, error) { return g.reply, nil }

func TestGenerateQuestions(t *testing.T) {
	c := Config{DurationMinutes: 5}
	require.NoError(t, c.Normalize())

	qs := GenerateQuestions(context.Background(), listGen{`["a","b","c","d","e","f"]`}, c)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, qs)

	// too few generated questions falls back to the bank
	qs = GenerateQuestions(context.Background(), listGen{`["a"]`}, c)
	assert.Equal(t, SelectQuestions(c), qs)
}

func TestAddSample(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(7, Config{InterviewType: "HR"}, []string{"q"}, now)
	assert.Len(t, s.ID, 36)

	kept, fb, err := AddSample(s, 3, Metrics{EyeContact: 50, Posture: 50, Confidence: 50, Engagement: 50, SpeechClarity: 50}, now)
	require.NoError(t, err)
	assert.False(t, kept)
	assert.Nil(t, fb)

	kept, fb, err = AddSample(s, 20, Metrics{EyeContact: 65, Posture: 85, Confidence: 70, Engagement: 55, SpeechClarity: 90}, now)
	require.NoError(t, err)
	assert.True(t, kept)
	assert.Equal(t, []string{
		"Improve eye contact with the camera",
		"Show more engagement: nod and respond to the interviewer",
	}, fb)
	require.Len(t, s.Samples, 1)
	assert.Equal(t, 20, s.Samples[0].Frame)

	_, _, err = AddSample(s, 30, Metrics{EyeContact: 101}, now)
	assert.ErrorIs(t, err, ErrMetricRange)

	require.NoError(t, Finish(s))
	_, _, err = AddSample(s, 40, Metrics{}, now)
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.ErrorIs(t, Finish(s), ErrSessionFinished)
}

func TestFeedbackAllGood(t *testing.T) {
	assert.Empty(t, Feedback(Metrics{EyeContact: 85, Posture: 90, Confidence: 80, Engagement: 80, SpeechClarity: 80}))
}

const starAnswer = `During my internship at a logistics startup the situation was that our nightly
report job kept failing. I was responsible for fixing it before the quarterly review. I decided to
profile the job, I rewrote the slowest query and added retries. As a result the runtime dropped from
3 hours to 20 minutes and we had zero failures for 2 months, which the team lead highlighted in the
review meeting with the whole engineering group and the operations managers.`

func TestAnalyzeAnswer(t *testing.T) {
	a := AnalyzeAnswer(starAnswer)
	assert.True(t, a.STAR["situation"])
	assert.True(t, a.STAR["task"])
	assert.True(t, a.STAR["action"])
	assert.True(t, a.STAR["result"])
	assert.True(t, a.Quantified)
	assert.Empty(t, a.FillerWords)
	assert.Equal(t, 25.0+40+15+15, a.Score)
	assert.Contains(t, a.Strengths, "Clear STAR structure")
}

func TestAnalyzeAnswerWeak(t *testing.T) {
	a := AnalyzeAnswer("Um, I basically just, uh, did my best you know.")
	assert.Equal(t, 0, len(filterTrue(a.STAR)))
	assert.False(t, a.Quantified)
	assert.Equal(t, 4, a.FillerWords["um"]+a.FillerWords["uh"]+a.FillerWords["basically"]+a.FillerWords["you know"])
	assert.Equal(t, 10.0+3, a.Score)

	assert.Equal(t, 0.0, AnalyzeAnswer("   ").Score)
}

func filterTrue(m map[string]bool) []string {
	var out []string
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	return out
}

func TestBuildReport(t *testing.T) {
	now := time.Now()
	s := NewSession(1, Config{}, nil, now)
	for i, m := range []Metrics{
		{EyeContact: 60, Posture: 70, Confidence: 50, Engagement: 80, SpeechClarity: 70},
		{EyeContact: 80, Posture: 90, Confidence: 70, Engagement: 60, SpeechClarity: 50},
	} {
		_, _, err := AddSample(s, i*SampleEvery, m, now)
		require.NoError(t, err)
	}
	_, err := AddAnswer(s, "q", "Um I did it")
	require.NoError(t, err)
	_, err = AddAnswer(s, "q", " ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	r := BuildReport(s)
	assert.Equal(t, 2, r.Samples)
	assert.Equal(t, Metrics{EyeContact: 70, Posture: 80, Confidence: 60, Engagement: 70, SpeechClarity: 60}, r.Averages)
	assert.Equal(t, []float64{60, 80}, r.Series["eye_contact"])
	assert.Equal(t, 73.3, r.BodyLanguage)
	assert.Equal(t, 64.4, r.Overall)
	assert.Contains(t, r.ImprovementPlan, "Work on reducing filler words (um, ah)")
	assert.Equal(t, "Record and review 3 mock interviews per week", r.ImprovementPlan[len(r.ImprovementPlan)-1])
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(&models.PracticeSession{ID: "x"})
	assert.Equal(t, 0.0, r.Overall)
	assert.Equal(t, []string{"Record and review 3 mock interviews per week"}, r.ImprovementPlan)
}
