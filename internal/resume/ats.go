package resume

import (
	"math"
	"regexp"
	"strings"

	"placementhub/internal/jobparser"
)

const (
	weightKeywords     = 40
	weightQuantified   = 20
	weightActionVerbs  = 15
	weightCompleteness = 15
	weightBreadth      = 10
)

type ATSResult struct {
	Score     int            `json:"score"`
	Breakdown map[string]int `json:"breakdown"`
	Feedback  []string       `json:"feedback"`
}

var actionVerbs = map[string]bool{
	"achieved": true, "analyzed": true, "automated": true, "built": true,
	"collaborated": true, "created": true, "delivered": true, "designed": true,
	"developed": true, "drove": true, "engineered": true, "implemented": true,
	"improved": true, "increased": true, "launched": true, "led": true,
	"managed": true, "mentored": true, "migrated": true, "optimized": true,
	"organized": true, "reduced": true, "resolved": true, "streamlined": true,
	"trained": true, "won": true,
}

var quantified = regexp.MustCompile(`\d`)

// Score rates how well the resume will parse and rank in an applicant
// tracking system, 0..100.
func Score(in Input, bullets []string, skills map[string][]string) ATSResult {
	res := ATSResult{Breakdown: map[string]int{}}

	text := strings.ToLower(strings.Join(in.Skills, " ") + " " + in.Experience + " " + in.Education)
	coverage := 0.0
	var jdSkills []string
	if strings.TrimSpace(in.JobDescription) != "" {
		jdSkills = jobparser.Parse(in.JobDescription).SkillList()
	}
	if len(jdSkills) > 0 {
		hits := 0
		for _, k := range jdSkills {
			if strings.Contains(text, strings.ToLower(k)) {
				hits++
			}
		}
		coverage = float64(hits) / float64(len(jdSkills))
	} else {
		known := 0
		for cat, list := range skills {
			if cat != "other" {
				known += len(list)
			}
		}
		coverage = math.Min(float64(known)/5, 1)
	}
	res.Breakdown["keywords"] = points(weightKeywords, coverage)

	q := 0
	for _, b := range bullets {
		if quantified.MatchString(b) {
			q++
		}
	}
	res.Breakdown["quantified_achievements"] = points(weightQuantified, math.Min(float64(q)/3, 1))

	verbs := 0
	for _, b := range bullets {
		if f := strings.Fields(strings.ToLower(b)); len(f) > 0 && actionVerbs[strings.Trim(f[0], ",;:")] {
			verbs++
		}
	}
	verbRatio := 0.0
	if len(bullets) > 0 {
		verbRatio = float64(verbs) / float64(len(bullets))
	}
	res.Breakdown["action_verbs"] = points(weightActionVerbs, verbRatio)

	filled := 0
	for _, s := range []string{in.Name, in.Email, in.Phone, strings.Join(in.Skills, ""), in.Experience, in.Education} {
		if strings.TrimSpace(s) != "" {
			filled++
		}
	}
	res.Breakdown["section_completeness"] = points(weightCompleteness, float64(filled)/6)

	cats := 0
	for cat := range skills {
		if cat != "other" {
			cats++
		}
	}
	res.Breakdown["skills_breadth"] = points(weightBreadth, math.Min(float64(cats)/4, 1))

	for _, v := range res.Breakdown {
		res.Score += v
	}
	res.Score = min(res.Score, 100)
	res.Feedback = feedback(res.Breakdown)
	return res
}

func points(weight int, ratio float64) int {
	return int(math.Round(float64(weight) * ratio))
}

func feedback(b map[string]int) []string {
	type rule struct {
		key      string
		weight   int
		ok, weak string
	}
	rules := []rule{
		{"keywords", weightKeywords, "Strong keyword matching", "Add more keywords from the target job description"},
		{"quantified_achievements", weightQuantified, "Achievements are quantified", "Add more quantifiable achievements (numbers, percentages)"},
		{"action_verbs", weightActionVerbs, "Bullets lead with action verbs", "Start experience bullets with action verbs"},
		{"section_completeness", weightCompleteness, "Good section structure", "Fill in missing contact or section details"},
		{"skills_breadth", weightBreadth, "Skills span several categories", "Improve skills categorization with a broader skill set"},
	}
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if float64(b[r.key]) >= 0.7*float64(r.weight) {
			out = append(out, r.ok)
		} else {
			out = append(out, r.weak)
		}
	}
	return out
}
