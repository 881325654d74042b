package interview

import (
	"errors"
	"strings"
	"time"

	"placementhub/internal/models"

	"github.com/google/uuid"
)

// SampleEvery is the frame stride at which body language is analysed.
const SampleEvery = 10

var (
	ErrSessionFinished = errors.New("practice session is finished")
	ErrMetricRange     = errors.New("metrics must be between 0 and 100")
	ErrNegativeFrame   = errors.New("frame index cannot be negative")
)

// Metrics is the body-language reading the client computed for a frame.
type Metrics struct {
	EyeContact    float64 `json:"eye_contact"`
	Posture       float64 `json:"posture"`
	Confidence    float64 `json:"confidence"`
	Engagement    float64 `json:"engagement"`
	SpeechClarity float64 `json:"speech_clarity"`
}

func (m Metrics) validate() error {
	for _, v := range []float64{m.EyeContact, m.Posture, m.Confidence, m.Engagement, m.SpeechClarity} {
		if v < 0 || v > 100 {
			return ErrMetricRange
		}
	}
	return nil
}

func ShouldSample(frame int) bool {
	return frame >= 0 && frame%SampleEvery == 0
}

// Feedback turns a reading into live coaching hints.
func Feedback(m Metrics) []string {
	out := []string{}
	if m.EyeContact < 70 {
		out = append(out, "Improve eye contact with the camera")
	}
	if m.Posture < 80 {
		out = append(out, "Sit up straight for better posture")
	}
	if m.Confidence < 60 {
		out = append(out, "Speak with more conviction and avoid hedging")
	}
	if m.Engagement < 60 {
		out = append(out, "Show more engagement: nod and respond to the interviewer")
	}
	if m.SpeechClarity < 60 {
		out = append(out, "Slow down and articulate your words clearly")
	}
	return out
}

// NewSession starts an active session for the student.
func NewSession(studentID uint, c Config, questions []string, now time.Time) *models.PracticeSession {
	return &models.PracticeSession{
		ID:              uuid.NewString(),
		StudentID:       studentID,
		InterviewType:   c.InterviewType,
		Difficulty:      c.Difficulty,
		DurationMinutes: c.DurationMinutes,
		Categories:      c.Categories,
		Questions:       questions,
		Samples:         []models.FrameSample{},
		Answers:         []models.AnswerRecord{},
		Status:          models.SessionActive,
		CreatedAt:       now,
	}
}

// AddSample records the reading for frame when it falls on the sampling
// stride. It reports whether the frame was kept.
func AddSample(s *models.PracticeSession, frame int, m Metrics, now time.Time) (bool, []string, error) {
	if s.Status == models.SessionFinished {
		return false, nil, ErrSessionFinished
	}
	if frame < 0 {
		return false, nil, ErrNegativeFrame
	}
	if err := m.validate(); err != nil {
		return false, nil, err
	}
	if !ShouldSample(frame) {
		return false, nil, nil
	}
	fb := Feedback(m)
	s.Samples = append(s.Samples, models.FrameSample{
		Frame:         frame,
		Timestamp:     now,
		EyeContact:    m.EyeContact,
		Posture:       m.Posture,
		Confidence:    m.Confidence,
		Engagement:    m.Engagement,
		SpeechClarity: m.SpeechClarity,
		Feedback:      fb,
	})
	return true, fb, nil
}

// AddAnswer analyses an answer and stores it on the session.
func AddAnswer(s *models.PracticeSession, question, answer string) (AnswerAnalysis, error) {
	if s.Status == models.SessionFinished {
		return AnswerAnalysis{}, ErrSessionFinished
	}
	if strings.TrimSpace(answer) == "" {
		return AnswerAnalysis{}, ErrEmptyAnswer
	}
	a := AnalyzeAnswer(answer)
	s.Answers = append(s.Answers, models.AnswerRecord{Question: question, Answer: answer, Score: a.Score})
	return a, nil
}

func Finish(s *models.PracticeSession) error {
	if s.Status == models.SessionFinished {
		return ErrSessionFinished
	}
	s.Status = models.SessionFinished
	return nil
}
