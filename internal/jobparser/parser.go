// Package jobparser extracts structured requirements from free-text job
// descriptions and renders ATS-friendly ones.
package jobparser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const notSpecified = "Not Specified"

// Parsed is the structured view of a job description.
type Parsed struct {
	Skills           map[string][]string `json:"skills"`
	Experience       []string            `json:"experience"`
	Education        []string            `json:"education"`
	Responsibilities []string            `json:"responsibilities"`
	Requirements     []string            `json:"requirements"`
	JobTitle         string              `json:"job_title"`
	Location         string              `json:"location"`
	Salary           string              `json:"salary"`
	Company          string              `json:"company"`
	ComplexityScore  int                 `json:"complexity_score"`
	ATSKeywords      []string            `json:"ats_keywords"`
}

// SkillList flattens Skills in catalogue order without duplicates.
func (p *Parsed) SkillList() []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range SkillDatabase {
		for _, s := range p.Skills[c.Name] {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\+?\s*(?:years?|yrs?)\s*(?:of)?\s*experience`),
		regexp.MustCompile(`(?i)experience\s*(?:of)?\s*\d+\+?\s*(?:years?|yrs?)`),
		regexp.MustCompile(`(?i)\d+\s*-\s*\d+\s*(?:years?|yrs?)\s*experience`),
	}

	educationPatterns = regexp.MustCompile(`(?i)\b(?:bachelor|b\.?tech|b\.e\.|b\.?sc|master|m\.?tech|m\.e\.|m\.?sc|mba|ph\.?d|doctorate|degree|diploma|graduat|qualif|certif)`)

	responsibilityKeywords = []string{"responsible", "responsibilit", "duties", "role", "will", "must", "should", "requires to"}
	requirementKeywords    = []string{"requirement", "required", "must have", "should have", "need to have", "essential", "preferred", "qualif"}

	titleWord     = `[A-Z][A-Za-z&+#./-]*`
	titlePhrase   = `(` + titleWord + `(?:[ \t]+` + titleWord + `)*)`
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:we are hiring|we're hiring)[ \t]+(?:(?i:an?)[ \t]+)?` + titlePhrase),
		regexp.MustCompile(`(?i:looking for)[ \t]+(?:(?i:an?)[ \t]+)?(?:(?i:talented|experienced|skilled|passionate)[ \t]+)?` + titlePhrase),
		regexp.MustCompile(`(?i:position|role|job)[ \t]+(?i:of)[ \t]+(?:(?i:an?)[ \t]+)?` + titlePhrase),
		regexp.MustCompile(titlePhrase + `[ \t]+(?i:position|role|job|opening)\b`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:location)[ \t]*:?[ \t]*([A-Z][A-Za-z ,]+)`),
		regexp.MustCompile(`(?i:based in)[ \t]+([A-Z][A-Za-z ,]+)`),
		regexp.MustCompile(`(?i:work from)[ \t]+([A-Z][A-Za-z ,]+)`),
	}

	money           = `[$₹€]?\s*\d+[,\d]*(?:\.\d+)?\s*[kK]?`
	salaryPattern   = regexp.MustCompile(`\b(?i:salary|compensation|pay|ctc)[ \t]*:?[ \t]*(` + money + `\s*(?:-|to)\s*` + money + `(?:\s*(?i:lpa|per annum))?)`)
	commonATSPhrase = []string{
		"team player", "problem solver", "detail oriented",
		"fast learner", "excellent communication", "leadership",
		"project management", "results driven", "self motivated",
		"critical thinking", "analytical skills", "creative",
		"adaptable", "reliable", "professional",
	}
)

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, c := range SkillDatabase {
		for _, s := range c.Skills {
			if _, ok := out[s]; ok {
				continue
			}
			out[s] = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])` + regexp.QuoteMeta(strings.ToLower(s)) + `(?:$|[^a-z0-9+#])`)
		}
	}
	return out
}

// Parse extracts skills, requirements and metadata from a job description.
func Parse(text string) *Parsed {
	p := &Parsed{
		Skills:           ExtractSkills(text),
		Experience:       extractExperience(text),
		Education:        extractSentences(text, func(s string) bool { return educationPatterns.MatchString(s) }, 5),
		Responsibilities: extractResponsibilities(text),
		Requirements:     extractSentences(text, containsAny(requirementKeywords), 10),
		JobTitle:         extractTitle(text),
		Location:         extractLocation(text),
		Salary:           extractSalary(text),
		Company:          extractCompany(text),
	}
	p.ComplexityScore = Complexity(p)
	p.ATSKeywords = atsKeywords(p)
	return p
}

// ExtractSkills returns catalogue skills mentioned in text, by category.
func ExtractSkills(text string) map[string][]string {
	found := make(map[string][]string)
	for _, c := range SkillDatabase {
		for _, s := range c.Skills {
			if skillPatterns[s].MatchString(text) {
				found[c.Name] = append(found[c.Name], s)
			}
		}
	}
	return found
}

func extractExperience(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, re := range experiencePatterns {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func sentences(text string) []string {
	return sentenceSplit.Split(text, -1)
}

func containsAny(keywords []string) func(string) bool {
	return func(s string) bool {
		l := strings.ToLower(s)
		for _, k := range keywords {
			if strings.Contains(l, k) {
				return true
			}
		}
		return false
	}
}

func extractSentences(text string, keep func(string) bool, limit int) []string {
	var out []string
	for _, s := range sentences(text) {
		if !keep(s) {
			continue
		}
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

func extractResponsibilities(text string) []string {
	match := containsAny(responsibilityKeywords)
	return extractSentences(text, func(s string) bool {
		return match(s) && len(strings.Fields(s)) > 4
	}, 10)
}

func extractTitle(text string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if t := strings.TrimRight(strings.TrimSpace(m[1]), ".,-/"); t != "" {
				return t
			}
		}
	}
	return notSpecified
}

func extractLocation(text string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if l := strings.Trim(m[1], " ,"); l != "" {
				return l
			}
		}
	}
	return notSpecified
}

func extractSalary(text string) string {
	if m := salaryPattern.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return notSpecified
}

func extractCompany(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" && len(strings.Fields(l)) <= 5 {
			return l
		}
	}
	return notSpecified
}

// Complexity scores how demanding a parsed description is, 0..100.
func Complexity(p *Parsed) int {
	score := 5 * len(p.Skills)
	if len(p.Experience) > 0 {
		score += 20
	}
	if len(p.Education) > 0 {
		score += 15
	}
	score += min(3*len(p.Responsibilities), 15)
	score += min(2*len(p.Requirements), 10)
	return min(score, 100)
}

func atsKeywords(p *Parsed) []string {
	var out []string
	seen := map[string]bool{}
	add := func(k string) {
		if !seen[strings.ToLower(k)] {
			seen[strings.ToLower(k)] = true
			out = append(out, k)
		}
	}
	for _, s := range p.SkillList() {
		add(s)
	}
	for _, k := range commonATSPhrase {
		add(k)
	}
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

// OptimizeInput describes a role for which to render a job description.
type OptimizeInput struct {
	JobTitle         string   `json:"job_title"`
	Department       string   `json:"department"`
	Experience       string   `json:"experience"`
	Location         string   `json:"location"`
	EmploymentType   string   `json:"employment_type"`
	SalaryRange      string   `json:"salary_range"`
	Skills           []string `json:"skills"`
	Responsibilities []string `json:"responsibilities"`
}

type Optimized struct {
	Description string    `json:"description"`
	ATSScore    int       `json:"ats_score"`
	ApplyBy     time.Time `json:"apply_by"`
}

// Optimize renders an ATS-friendly job description. now fixes the apply-by
// date, 30 days out.
func Optimize(in OptimizeInput, now time.Time) Optimized {
	title := strings.TrimSpace(in.JobTitle)
	if title == "" {
		title = "Position"
	}
	exp := in.Experience
	if exp == "" {
		exp = "Experience in relevant field"
	}
	loc := in.Location
	if loc == "" {
		loc = "Multiple locations available"
	}
	skills := in.Skills
	if len(skills) > 8 {
		skills = skills[:8]
	}
	resp := in.Responsibilities
	if len(resp) > 5 {
		resp = resp[:5]
	}
	applyBy := now.AddDate(0, 0, 30)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	b.WriteString("About the Role:\n")
	fmt.Fprintf(&b, "We are looking for a talented %s to join our dynamic team. ", title)
	b.WriteString("This is an exciting opportunity to work on cutting-edge projects and make a significant impact.\n\n")
	if len(resp) > 0 {
		b.WriteString("Key Responsibilities:\n")
		for _, r := range resp {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(r))
		}
		b.WriteString("\n")
	}
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- %s\n", exp)
	b.WriteString("- Relevant educational background\n")
	fmt.Fprintf(&b, "- Strong skills in: %s\n", strings.Join(skills, ", "))
	b.WriteString("- Excellent problem-solving abilities\n")
	b.WriteString("- Good communication skills\n\n")
	b.WriteString("What We Offer:\n")
	if in.SalaryRange != "" {
		fmt.Fprintf(&b, "- Compensation: %s\n", in.SalaryRange)
	} else {
		b.WriteString("- Competitive salary package\n")
	}
	b.WriteString("- Comprehensive health benefits\n")
	b.WriteString("- Professional development opportunities\n")
	b.WriteString("- Flexible work arrangements\n\n")
	if in.EmploymentType != "" {
		fmt.Fprintf(&b, "Employment Type: %s\n", in.EmploymentType)
	}
	if in.Department != "" {
		fmt.Fprintf(&b, "Department: %s\n", in.Department)
	}
	fmt.Fprintf(&b, "Location: %s\n", loc)
	fmt.Fprintf(&b, "Apply by: %s\n", applyBy.Format("2006-01-02"))

	return Optimized{
		Description: b.String(),
		ATSScore:    min(85+2*len(in.Skills), 100),
		ApplyBy:     applyBy,
	}
}
