// Package prompt renders the instruction text sent to each agent.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"regexp"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed agents/*.md
var agentFS embed.FS

// Template names.
const (
	Style        = "style"
	Research     = "research"
	Write        = "write"
	SEO          = "seo"
	Links        = "links"
	Edit         = "edit"
	ResearchArea = "research_area"
	Topics       = "topics"
	ParseInput   = "parse_input"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Builder renders named prompt templates.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder parses the embedded templates.
func NewBuilder() (*Builder, error) {
	tmpl, err := template.New("prompts").
		Funcs(template.FuncMap{
			"bullets": bullets,
			"join":    strings.Join,
		}).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	return &Builder{tmpl: tmpl}, nil
}

// Render executes the named template with data. Sections whose values are
// empty are elided by the templates themselves; the leftover blank lines are
// collapsed here.
func (b *Builder) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}

	return tidy(buf.String()), nil
}

// Instructions returns the system instructions for the named agent.
func (b *Builder) Instructions(agent string) (string, error) {
	raw, err := agentFS.ReadFile(path.Join("agents", agent+".md"))
	if err != nil {
		return "", fmt.Errorf("failed to read %s agent instructions: %w", agent, err)
	}

	return strings.TrimSpace(string(raw)), nil
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
