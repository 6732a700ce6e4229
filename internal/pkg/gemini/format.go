package gemini

import "strings"

// Structured holds the parsed sections of a tutor answer. When the model
// ignores the requested format, Answer carries the full raw text and the
// other sections stay empty.
type Structured struct {
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
	VisualAid   string `json:"visual_aid,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

var sectionMarkers = []struct {
	prefix string
	key    string
}{
	{"✅ **Answer:**", "answer"},
	{"\U0001F4D8 **Step-by-Step Explanation:**", "explanation"},
	{"\U0001F5BC️ **Visual Aid:**", "visual"},
	{"\U0001F5BC **Visual Aid:**", "visual"},
	{"\U0001F50A **Summary:**", "summary"},
}

// ParseStructured splits a structured tutor response into its sections.
func ParseStructured(text string) Structured {
	if !strings.Contains(text, "✅ **Answer:**") {
		return Structured{Answer: strings.TrimSpace(text)}
	}

	sections := map[string][]string{}
	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		matched := false
		for _, m := range sectionMarkers {
			if strings.HasPrefix(trimmed, m.prefix) {
				current = m.key
				rest := strings.TrimSpace(strings.TrimPrefix(trimmed, m.prefix))
				if rest != "" {
					sections[current] = append(sections[current], rest)
				}
				matched = true
				break
			}
		}
		if !matched && current != "" && trimmed != "" {
			sections[current] = append(sections[current], trimmed)
		}
	}

	join := func(key string) string {
		return strings.Join(sections[key], "\n")
	}
	out := Structured{
		Answer:      join("answer"),
		Explanation: join("explanation"),
		VisualAid:   join("visual"),
		Summary:     join("summary"),
	}
	if out.VisualAid == "None needed" {
		out.VisualAid = ""
	}
	if out.Answer == "" {
		out.Answer = strings.TrimSpace(text)
	}
	return out
}
