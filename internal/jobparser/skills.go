package jobparser

import "strings"

// Category is a named group of skills in the skill database.
type Category struct {
	Name   string
	Skills []string
}

// SkillDatabase is the catalogue skill extraction matches against. A skill
// may appear in more than one category.
var SkillDatabase = []Category{
	{"programming", []string{"Python", "Java", "JavaScript", "C++", "C#", "Go", "Rust", "Swift", "Kotlin", "TypeScript"}},
	{"web_dev", []string{"HTML", "CSS", "React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring"}},
	{"mobile", []string{"React Native", "Flutter", "Android", "iOS", "Xamarin"}},
	{"databases", []string{"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra", "Oracle", "SQLite"}},
	{"cloud", []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins", "CI/CD"}},
	{"data_science", []string{"Python", "R", "SQL", "Pandas", "NumPy", "Scikit-learn", "TensorFlow", "PyTorch", "Tableau", "Power BI"}},
	{"ai_ml", []string{"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "Reinforcement Learning", "MLOps"}},
	{"devops", []string{"Linux", "Bash", "Git", "Docker", "Kubernetes", "AWS", "Azure", "Jenkins", "Terraform"}},
	{"soft_skills", []string{"Communication", "Leadership", "Teamwork", "Problem-solving", "Critical Thinking", "Time Management"}},
	{"tools", []string{"Git", "JIRA", "Confluence", "Slack", "Figma", "VS Code", "IntelliJ", "Postman"}},
}

// CategoryOf returns the first category containing skill, or "other".
func CategoryOf(skill string) string {
	for _, c := range SkillDatabase {
		for _, s := range c.Skills {
			if strings.EqualFold(s, strings.TrimSpace(skill)) {
				return c.Name
			}
		}
	}
	return "other"
}

// Canonical returns the catalogue spelling of skill when it is known.
func Canonical(skill string) string {
	skill = strings.TrimSpace(skill)
	for _, c := range SkillDatabase {
		for _, s := range c.Skills {
			if strings.EqualFold(s, skill) {
				return s
			}
		}
	}
	return skill
}

// Categorize groups skills by CategoryOf, keeping input order.
func Categorize(skills []string) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]bool)
	for _, s := range skills {
		s = Canonical(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		c := CategoryOf(s)
		out[c] = append(out[c], s)
	}
	return out
}

// Template is a canned job description outline.
type Template struct {
	Role             string   `json:"role"`
	RequiredSkills   []string `json:"required_skills"`
	Experience       string   `json:"experience"`
	Responsibilities []string `json:"responsibilities"`
}

var Templates = []Template{
	{
		Role:           "Software Engineer",
		RequiredSkills: []string{"Python", "Java", "SQL", "Git", "Problem-solving"},
		Experience:     "2+ years",
		Responsibilities: []string{
			"Design, develop and maintain software applications",
			"Write clean, efficient, and well-documented code",
			"Collaborate with cross-functional teams",
			"Participate in code reviews",
		},
	},
	{
		Role:           "Data Scientist",
		RequiredSkills: []string{"Python", "SQL", "Machine Learning", "Statistics", "Data Visualization"},
		Experience:     "3+ years",
		Responsibilities: []string{
			"Analyze large datasets to extract insights",
			"Build and deploy machine learning models",
			"Create data visualizations and reports",
			"Collaborate with business teams",
		},
	},
	{
		Role:           "DevOps Engineer",
		RequiredSkills: []string{"AWS", "Docker", "Kubernetes", "CI/CD", "Linux"},
		Experience:     "2+ years",
		Responsibilities: []string{
			"Design and implement CI/CD pipelines",
			"Manage cloud infrastructure",
			"Ensure system reliability and scalability",
			"Implement monitoring and logging",
		},
	},
}

// TemplateText renders a template as plain job description text, suitable
// for Parse.
func TemplateText(t Template) string {
	var b strings.Builder
	b.WriteString(t.Role + "\n\n")
	b.WriteString("We are looking for an experienced " + t.Role + " to join our team.\n\n")
	b.WriteString("Responsibilities:\n")
	for _, r := range t.Responsibilities {
		b.WriteString("You will " + strings.ToLower(r[:1]) + r[1:] + ".\n")
	}
	b.WriteString("\nRequirements:\n")
	b.WriteString(t.Experience + " of experience is required.\n")
	b.WriteString("Strong skills in " + strings.Join(t.RequiredSkills, ", ") + " are required.\n")
	return b.String()
}
