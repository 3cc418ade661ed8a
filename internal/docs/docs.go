// Package docs holds the markdown help pages printed by `trackup docs`.
package docs

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic names one help page and its heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists the help page names in order.
func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, p := range entries {
		if name := strings.TrimSuffix(path.Base(p), ".md"); name != "" {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)
	return topics
}

// Index pairs every page with its first heading, for `trackup docs`.
func Index() []Topic {
	names := Topics()
	out := make([]Topic, 0, len(names))
	for _, name := range names {
		body, _ := Get(name)
		out = append(out, Topic{Name: name, Title: title(body, name)})
	}
	return out
}

// Get returns a page's markdown. Names are case-insensitive and never paths.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, `/\.`) {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

func title(body, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		if h, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	return fallback
}
