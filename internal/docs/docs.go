package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help document: its lookup name (the file name
// without extension) and the title taken from its first heading.
type Topic struct {
	Name  string
	Title string
}

// Topics lists the embedded help topics, sorted by name.
func Topics() []Topic {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil
	}
	var topics []Topic
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok {
			continue
		}
		body, err := contentFS.ReadFile("content/" + e.Name())
		if err != nil {
			continue
		}
		topics = append(topics, Topic{Name: name, Title: docTitle(string(body), name)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// docTitle extracts the first markdown h1, falling back to the topic name.
func docTitle(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		if t, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return fallback
}

// Get returns the markdown body for a topic name.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}
