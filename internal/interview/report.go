package interview

import (
	"math"

	"placementhub/internal/models"
)

type Report struct {
	SessionID       string               `json:"session_id"`
	Samples         int                  `json:"samples"`
	Averages        Metrics              `json:"averages"`
	Series          map[string][]float64 `json:"series"`
	BodyLanguage    float64              `json:"body_language"`
	SpeechClarity   float64              `json:"speech_clarity"`
	Confidence      float64              `json:"confidence"`
	Overall         float64              `json:"overall"`
	AnswerScore     float64              `json:"answer_score"`
	ImprovementPlan []string             `json:"improvement_plan"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildReport summarises the sampled metrics and answers of a session.
func BuildReport(s *models.PracticeSession) Report {
	r := Report{
		SessionID: s.ID,
		Samples:   len(s.Samples),
		Series: map[string][]float64{
			"eye_contact": {}, "posture": {}, "confidence": {}, "engagement": {}, "speech_clarity": {},
		},
	}
	var sum Metrics
	for _, f := range s.Samples {
		sum.EyeContact += f.EyeContact
		sum.Posture += f.Posture
		sum.Confidence += f.Confidence
		sum.Engagement += f.Engagement
		sum.SpeechClarity += f.SpeechClarity
		r.Series["eye_contact"] = append(r.Series["eye_contact"], f.EyeContact)
		r.Series["posture"] = append(r.Series["posture"], f.Posture)
		r.Series["confidence"] = append(r.Series["confidence"], f.Confidence)
		r.Series["engagement"] = append(r.Series["engagement"], f.Engagement)
		r.Series["speech_clarity"] = append(r.Series["speech_clarity"], f.SpeechClarity)
	}
	if n := float64(len(s.Samples)); n > 0 {
		r.Averages = Metrics{
			EyeContact:    round1(sum.EyeContact / n),
			Posture:       round1(sum.Posture / n),
			Confidence:    round1(sum.Confidence / n),
			Engagement:    round1(sum.Engagement / n),
			SpeechClarity: round1(sum.SpeechClarity / n),
		}
		r.BodyLanguage = round1((r.Averages.EyeContact + r.Averages.Posture + r.Averages.Engagement) / 3)
		r.SpeechClarity = r.Averages.SpeechClarity
		r.Confidence = r.Averages.Confidence
		r.Overall = round1((r.BodyLanguage + r.SpeechClarity + r.Confidence) / 3)
	}

	fillers := 0
	if len(s.Answers) > 0 {
		total := 0.0
		for _, a := range s.Answers {
			total += a.Score
			for _, c := range AnalyzeAnswer(a.Answer).FillerWords {
				fillers += c
			}
		}
		r.AnswerScore = round1(total / float64(len(s.Answers)))
	}

	if r.Samples > 0 {
		if r.Averages.EyeContact < 70 {
			r.ImprovementPlan = append(r.ImprovementPlan, "Practice maintaining eye contact for 70% of the interview")
		}
		if r.Averages.Posture < 80 {
			r.ImprovementPlan = append(r.ImprovementPlan, "Practice power poses and upright posture before interviews")
		}
		if r.SpeechClarity < 60 {
			r.ImprovementPlan = append(r.ImprovementPlan, "Join Toastmasters or speaking clubs")
		}
		if r.Confidence < 60 {
			r.ImprovementPlan = append(r.ImprovementPlan, "Rehearse answers aloud until they feel natural")
		}
	}
	if fillers > 0 {
		r.ImprovementPlan = append(r.ImprovementPlan, "Work on reducing filler words (um, ah)")
	}
	r.ImprovementPlan = append(r.ImprovementPlan, "Record and review 3 mock interviews per week")
	return r
}
