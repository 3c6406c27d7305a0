// Package topics generates blog topic ideas for a reference publication.
package topics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/prompt"
)

const (
	DefaultCount = 5
	MinCount     = 1
	MaxCount     = 20
)

// ErrInvalidRequest is returned before any model call for unusable requests.
var ErrInvalidRequest = errors.New("invalid topic request")

// TopicIdea is one parsed topic suggestion.
type TopicIdea struct {
	Title       string   `json:"title"`
	Angle       string   `json:"angle"`
	Keywords    []string `json:"keywords"`
	Rationale   string   `json:"rationale"`
	ContentType string   `json:"content_type"`
}

// Request describes what to generate.
type Request struct {
	ReferenceBlog  string   `json:"reference_blog"`
	Preferences    string   `json:"preferences"`
	Keywords       []string `json:"keywords"`
	ProductTarget  string   `json:"product_target"`
	ExistingTopics []string `json:"existing_topics"`
	Count          int      `json:"count"`
}

// ClampCount bounds n to [MinCount, MaxCount]; zero means DefaultCount.
func ClampCount(n int) int {
	switch {
	case n == 0:
		return DefaultCount
	case n < MinCount:
		return MinCount
	case n > MaxCount:
		return MaxCount
	default:
		return n
	}
}

// Generator runs the topic agent.
type Generator struct {
	log       *slog.Logger
	invoker   llm.Invoker
	prompts   *prompt.Builder
	webSearch bool
}

// NewGenerator creates a Generator.
func NewGenerator(log *slog.Logger, invoker llm.Invoker, prompts *prompt.Builder, webSearch bool) *Generator {
	return &Generator{
		log:       log,
		invoker:   invoker,
		prompts:   prompts,
		webSearch: webSearch,
	}
}

// Prompt renders the instruction text for req.
func (g *Generator) Prompt(req Request) (string, error) {
	return g.prompts.Render(prompt.Topics, prompt.TopicsData{
		Count:          ClampCount(req.Count),
		ReferenceBlog:  strings.TrimSpace(req.ReferenceBlog),
		Preferences:    strings.TrimSpace(req.Preferences),
		ProductTarget:  strings.TrimSpace(req.ProductTarget),
		Keywords:       prompt.Cap(req.Keywords, prompt.MaxKeywords),
		ExistingTopics: prompt.Cap(req.ExistingTopics, prompt.MaxExistingTopics),
	})
}

// Generate makes one model call and parses its output. The result may hold
// fewer ideas than requested when the output does not follow the convention.
func (g *Generator) Generate(ctx context.Context, req Request) ([]TopicIdea, error) {
	if strings.TrimSpace(req.ReferenceBlog) == "" {
		return nil, fmt.Errorf("%w: reference blog is required", ErrInvalidRequest)
	}

	text, err := g.Prompt(req)
	if err != nil {
		return nil, err
	}

	instructions, err := g.prompts.Instructions(prompt.Topics)
	if err != nil {
		return nil, err
	}

	g.log.Info("generating topic ideas", "reference", req.ReferenceBlog, "count", ClampCount(req.Count))

	resp, err := g.invoker.Invoke(ctx, llm.Request{
		Agent: llm.Agent{
			Name:         prompt.Topics,
			Instructions: instructions,
			WebSearch:    g.webSearch,
		},
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate topic ideas: %w", err)
	}

	ideas := Parse(resp.Text)
	g.log.Info("parsed topic ideas", "count", len(ideas))

	return ideas, nil
}
