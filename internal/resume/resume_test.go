package resume

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGen struct {
	out string
	err error
}

func (s stubGen) Generate(context.Context, string, bool) (string, error) {
	return s.out, s.err
}

func sampleInput() Input {
	return Input{
		Name:           "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "9999999999",
		TargetRole:     "Data Engineer",
		EducationLevel: "Bachelor's",
		Skills:         []string{"python", "SQL", "Docker", "Communication", "Basket weaving"},
		Experience: `- Built an ETL pipeline processing 2M rows daily
- Reduced query latency by 40% on the reporting database
Led a team of 4 students. Improved test coverage to 85%`,
		Education:      "B.E. Computer Engineering, PICT, 2024\nCGPA 8.7",
		JobDescription: "We need a Data Engineer with Python, SQL, Spark experience and AWS.",
	}
}

func TestBuildWithoutModel(t *testing.T) {
	r, err := Build(context.Background(), nil, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "professional", r.Template)
	assert.Equal(t, []string{"Python"}, r.Skills["programming"])
	assert.Equal(t, []string{"Basket weaving"}, r.Skills["other"])
	assert.Equal(t, []string{"Docker"}, r.Skills["cloud"])
	assert.Equal(t, []string{
		"Built an ETL pipeline processing 2M rows daily",
		"Reduced query latency by 40% on the reporting database",
		"Led a team of 4 students",
		"Improved test coverage to 85%",
	}, r.Experience)
	assert.Equal(t, []string{"B.E. Computer Engineering, PICT, 2024", "CGPA 8.7"}, r.Education)
	assert.Contains(t, r.Summary, "Asha Rao is an aspiring Data Engineer")
	assert.Contains(t, r.Text, "EXPERIENCE\n- Built an ETL pipeline")
}

func TestBuildUsesModelSummary(t *testing.T) {
	r, err := Build(context.Background(), stubGen{out: " Generated summary. "}, sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Generated summary.", r.Summary)

	r, err = Build(context.Background(), stubGen{err: errors.New("quota")}, sampleInput())
	require.NoError(t, err)
	assert.Contains(t, r.Summary, "Asha Rao")
}

func TestBuildValidation(t *testing.T) {
	in := sampleInput()
	in.Education = " "
	_, err := Build(context.Background(), nil, in)
	assert.ErrorIs(t, err, ErrMissingField)

	in = sampleInput()
	in.Template = "gothic"
	_, err = Build(context.Background(), nil, in)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestScore(t *testing.T) {
	in := sampleInput()
	r, err := Build(context.Background(), nil, in)
	require.NoError(t, err)

	b := r.ATS.Breakdown
	// catalogue skills in the description are Python, SQL and AWS
	assert.Equal(t, 27, b["keywords"])
	assert.Equal(t, 20, b["quantified_achievements"])
	assert.Equal(t, 15, b["action_verbs"])
	assert.Equal(t, 15, b["section_completeness"])
	assert.Equal(t, 10, b["skills_breadth"])
	assert.Equal(t, 87, r.ATS.Score)
	assert.Equal(t, "Add more keywords from the target job description", r.ATS.Feedback[0])
	assert.Equal(t, "Achievements are quantified", r.ATS.Feedback[1])
}

func TestScoreWeakResume(t *testing.T) {
	in := Input{Name: "X", Skills: []string{"Juggling"}, Experience: "did some things", Education: "school"}
	r, err := Build(context.Background(), nil, in)
	require.NoError(t, err)
	assert.Equal(t, 0, r.ATS.Breakdown["keywords"])
	assert.Equal(t, 0, r.ATS.Breakdown["quantified_achievements"])
	assert.Equal(t, 0, r.ATS.Breakdown["action_verbs"])
	assert.Equal(t, 10, r.ATS.Breakdown["section_completeness"])
	assert.Equal(t, 10, r.ATS.Score)
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 100.0, MatchScore(nil, nil))
	assert.Equal(t, 50.0, MatchScore([]string{"postgres", "java"}, []string{"PostgreSQL", "Go"}))
	assert.Equal(t, 0.0, MatchScore([]string{"Java"}, []string{"JavaScript"}))
}

func TestGap(t *testing.T) {
	jd := "Backend Developer needed. Must know Python, Docker and Kubernetes. 3+ years experience required."
	rep := Gap([]string{"python"}, "Deployed services with Docker on AWS", jd)

	assert.ElementsMatch(t, []string{"Python", "Docker"}, rep.MatchedSkills)
	assert.Contains(t, rep.MissingSkills, "Kubernetes")
	assert.Contains(t, rep.KeywordsToAdd, "Kubernetes")
	assert.NotContains(t, rep.KeywordsToAdd, "Python")
	assert.Contains(t, rep.Suggestions, "Quantify achievements with numbers or percentages")
	assert.Greater(t, rep.MatchScore, 0.0)
	assert.Less(t, rep.MatchScore, 100.0)
}
