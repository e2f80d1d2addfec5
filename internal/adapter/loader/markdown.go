// Package loader reads lecture documents written in Markdown and reduces them
// to plain prose for the quiz engine.
package loader

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultSectionTitle names the text that precedes the first header.
const DefaultSectionTitle = "Introduction"

// Section is the text under one Markdown header.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type rewrite struct {
	pattern *regexp.Regexp
	repl    string
}

// Order matters: images go before links so the link rule does not leave "!alt" behind.
var cleanRules = []rewrite{
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile("`[^`]+`"), ""},
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`), "$1"},
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`_([^_]+)_`), "$1"},
	{regexp.MustCompile(`(?m)^---+$`), ""},
	{regexp.MustCompile(`(?m)^\*\*\*+$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`[ \t]+`), " "},
}

var headerLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Load reads the raw document at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read lecture file %s: %w", path, err)
	}
	return string(data), nil
}

// LoadClean reads path and returns its plain-text content.
func LoadClean(path string) (string, error) {
	raw, err := Load(path)
	if err != nil {
		return "", err
	}
	return Clean(raw), nil
}

// Clean strips Markdown formatting from raw and trims every line.
func Clean(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	for _, r := range cleanRules {
		text = r.pattern.ReplaceAllString(text, r.repl)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Sections splits raw Markdown at its headers. Sections without content are
// dropped.
func Sections(raw string) []Section {
	var sections []Section
	current := Section{Title: DefaultSectionTitle}
	var body strings.Builder

	flush := func() {
		if strings.TrimSpace(body.String()) != "" {
			current.Content = body.String()
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if m := headerLine.FindStringSubmatch(line); m != nil {
			flush()
			current = Section{Title: strings.TrimSpace(m[2])}
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
	return sections
}
