package resume

import (
	"fmt"
	"math"
	"strings"

	"placementhub/internal/jobparser"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// SkillMatchThreshold is the Jaro-Winkler similarity at which two skill
// names are treated as the same skill.
const SkillMatchThreshold = 0.9

type GapReport struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	KeywordsToAdd []string `json:"keywords_to_add"`
	Suggestions   []string `json:"suggestions"`
	MatchScore    float64  `json:"match_score"`
}

func hasSkill(have []string, want string) bool {
	jw := metrics.NewJaroWinkler()
	w := strings.ToLower(strings.TrimSpace(want))
	for _, h := range have {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == w || strutil.Similarity(h, w, jw) >= SkillMatchThreshold {
			return true
		}
	}
	return false
}

// MatchScore is the share of want covered by have, 0..100. An empty want
// is fully covered.
func MatchScore(have, want []string) float64 {
	if len(want) == 0 {
		return 100
	}
	n := 0
	for _, w := range want {
		if hasSkill(have, w) {
			n++
		}
	}
	return math.Round(float64(n)/float64(len(want))*1000) / 10
}

// Gap compares a resume (declared skills plus free text) with a job
// description.
func Gap(skills []string, resumeText, jobDescription string) GapReport {
	jd := jobparser.Parse(jobDescription)
	have := append([]string{}, skills...)
	have = append(have, (&jobparser.Parsed{Skills: jobparser.ExtractSkills(resumeText)}).SkillList()...)

	var rep GapReport
	want := jd.SkillList()
	for _, s := range want {
		if hasSkill(have, s) {
			rep.MatchedSkills = append(rep.MatchedSkills, s)
		} else {
			rep.MissingSkills = append(rep.MissingSkills, s)
		}
	}
	rep.MatchScore = MatchScore(have, want)

	lower := strings.ToLower(resumeText + " " + strings.Join(skills, " "))
	for _, k := range jd.ATSKeywords {
		if len(rep.KeywordsToAdd) == 10 {
			break
		}
		if !strings.Contains(lower, strings.ToLower(k)) && !hasSkill(have, k) {
			rep.KeywordsToAdd = append(rep.KeywordsToAdd, k)
		}
	}

	if len(rep.MissingSkills) > 0 {
		rep.Suggestions = append(rep.Suggestions, fmt.Sprintf("Build and show experience with: %s", strings.Join(rep.MissingSkills, ", ")))
	}
	if len(rep.KeywordsToAdd) > 0 {
		rep.Suggestions = append(rep.Suggestions, "Work the listed keywords into your summary and experience bullets")
	}
	if !quantified.MatchString(resumeText) {
		rep.Suggestions = append(rep.Suggestions, "Quantify achievements with numbers or percentages")
	}
	if len(jd.Experience) > 0 {
		rep.Suggestions = append(rep.Suggestions, "Make sure your experience covers: "+strings.Join(jd.Experience, "; "))
	}
	return rep
}
