package models

import "time"

const (
	SessionActive   = "active"
	SessionFinished = "finished"
)

// FrameSample is the body-language reading for one analysed video frame.
type FrameSample struct {
	Frame         int       `json:"frame"`
	Timestamp     time.Time `json:"timestamp"`
	EyeContact    float64   `json:"eye_contact"`
	Posture       float64   `json:"posture"`
	Confidence    float64   `json:"confidence"`
	Engagement    float64   `json:"engagement"`
	SpeechClarity float64   `json:"speech_clarity"`
	Feedback      []string  `json:"feedback"`
}

type AnswerRecord struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

// PracticeSession is one run of the interview simulator.
type PracticeSession struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	StudentID       uint           `gorm:"index;not null" json:"student_id"`
	InterviewType   string         `gorm:"size:50" json:"interview_type"`
	Difficulty      string         `gorm:"size:20" json:"difficulty"`
	DurationMinutes int            `json:"duration_minutes"`
	Categories      []string       `gorm:"serializer:json" json:"categories"`
	Questions       []string       `gorm:"serializer:json" json:"questions"`
	Samples         []FrameSample  `gorm:"serializer:json" json:"samples"`
	Answers         []AnswerRecord `gorm:"serializer:json" json:"answers"`
	Status          string         `gorm:"size:20;default:active" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}
