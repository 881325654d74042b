package resume

import (
	"sort"
	"strings"
)

type layout struct {
	heading func(string) string
	bullet  string
}

var layouts = map[string]layout{
	"professional": {heading: strings.ToUpper, bullet: "- "},
	"modern":       {heading: func(s string) string { return "## " + s }, bullet: "* "},
	"creative":     {heading: func(s string) string { return ">> " + s + " <<" }, bullet: "> "},
	"minimalist":   {heading: strings.ToLower, bullet: "  "},
}

// Render lays the resume out as plain text in its template.
func Render(r *Resume) string {
	l, ok := layouts[r.Template]
	if !ok {
		l = layouts["professional"]
	}
	var sb strings.Builder
	sb.WriteString(r.Name + "\n\n")

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(l.heading(title) + "\n")
		for _, it := range items {
			sb.WriteString(l.bullet + it + "\n")
		}
		sb.WriteString("\n")
	}

	section("Summary", []string{r.Summary})

	cats := make([]string, 0, len(r.Skills))
	for c := range r.Skills {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	var skills []string
	for _, c := range cats {
		skills = append(skills, c+": "+strings.Join(r.Skills[c], ", "))
	}
	section("Skills", skills)
	section("Experience", r.Experience)
	section("Education", r.Education)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
