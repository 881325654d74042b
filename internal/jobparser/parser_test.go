package jobparser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJD = `Acme Analytics
We are hiring a Senior Data Engineer to build our platform.
Location: Bangalore, India
Salary: 12 - 18 LPA
You will be responsible for designing scalable data pipelines in Python and SQL.
You must have 3+ years of experience with AWS and Docker.
A Bachelor degree in Computer Science is required.
Strong communication and teamwork are essential.`

func TestParseSampleDescription(t *testing.T) {
	p := Parse(sampleJD)

	assert.Equal(t, "Senior Data Engineer", p.JobTitle)
	assert.Equal(t, "Bangalore, India", p.Location)
	assert.Equal(t, "12 - 18 LPA", p.Salary)
	assert.Equal(t, "Acme Analytics", p.Company)
	assert.Equal(t, []string{"3+ years of experience"}, p.Experience)
	require.Len(t, p.Education, 1)
	assert.Contains(t, p.Education[0], "Bachelor degree")
	assert.Len(t, p.Responsibilities, 2)
	assert.Len(t, p.Requirements, 3)

	assert.Equal(t, []string{"Python"}, p.Skills["programming"])
	assert.Equal(t, []string{"Python", "SQL"}, p.Skills["data_science"])
	assert.Equal(t, []string{"Docker", "AWS"}, p.Skills["devops"])
	assert.Equal(t, []string{"Communication", "Teamwork"}, p.Skills["soft_skills"])
	assert.Len(t, p.Skills, 6)

	// 6 categories*5 + experience 20 + education 15 + 2 resp*3 + 3 req*2
	assert.Equal(t, 77, p.ComplexityScore)

	assert.Equal(t, []string{"Python", "SQL", "AWS", "Docker", "Communication", "Teamwork"}, p.SkillList())
	require.Len(t, p.ATSKeywords, 20)
	assert.Equal(t, "Python", p.ATSKeywords[0])
	assert.NotContains(t, p.ATSKeywords, "professional")
}

func TestExtractSkillsBoundaries(t *testing.T) {
	s := ExtractSkills("Experience with C++ and C# required. JavaScript developer wanted, Google fans welcome.")
	assert.Equal(t, []string{"JavaScript", "C++", "C#"}, s["programming"])
	assert.NotContains(t, s["programming"], "Java")
	assert.NotContains(t, s["programming"], "Go")
}

func TestParseEmptyText(t *testing.T) {
	p := Parse("")
	assert.Equal(t, notSpecified, p.JobTitle)
	assert.Equal(t, notSpecified, p.Location)
	assert.Equal(t, notSpecified, p.Salary)
	assert.Equal(t, 0, p.ComplexityScore)
	assert.Len(t, p.ATSKeywords, 15)
}

func TestComplexityIsCapped(t *testing.T) {
	p := &Parsed{
		Skills:           map[string][]string{"a": nil, "b": nil, "c": nil, "d": nil, "e": nil, "f": nil, "g": nil, "h": nil, "i": nil, "j": nil, "k": nil, "l": nil},
		Experience:       []string{"x"},
		Education:        []string{"x"},
		Responsibilities: make([]string, 10),
		Requirements:     make([]string, 10),
	}
	assert.Equal(t, 100, Complexity(p))
}

func TestTemplateTextParses(t *testing.T) {
	p := Parse(TemplateText(Templates[2]))
	assert.Equal(t, "DevOps Engineer", p.Company)
	assert.NotEmpty(t, p.Experience)
	assert.Contains(t, p.SkillList(), "Kubernetes")
	assert.Contains(t, p.SkillList(), "CI/CD")
}

func TestOptimize(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	o := Optimize(OptimizeInput{
		JobTitle:         "Software Engineer",
		Experience:       "1-3 years",
		Location:         "Pune",
		Skills:           []string{"Go", "SQL", "Docker"},
		Responsibilities: []string{"Build services"},
	}, now)

	assert.Equal(t, 91, o.ATSScore)
	assert.Equal(t, now.AddDate(0, 0, 30), o.ApplyBy)
	assert.True(t, strings.HasPrefix(o.Description, "Software Engineer\n"))
	assert.Contains(t, o.Description, "Strong skills in: Go, SQL, Docker")
	assert.Contains(t, o.Description, "- Build services")
	assert.Contains(t, o.Description, "Apply by: 2025-03-31")

	many := Optimize(OptimizeInput{JobTitle: "X", Skills: make([]string, 10)}, now)
	assert.Equal(t, 100, many.ATSScore)
}

func TestCategorize(t *testing.T) {
	got := Categorize([]string{"python", "Figma", "Underwater Basket Weaving", "Python"})
	assert.Equal(t, []string{"Python"}, got["programming"])
	assert.Equal(t, []string{"Figma"}, got["tools"])
	assert.Equal(t, []string{"Underwater Basket Weaving"}, got["other"])
}
