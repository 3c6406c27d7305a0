package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// mockInvoker records every request and answers with respond.
type mockInvoker struct {
	mu      sync.Mutex
	calls   []llm.Request
	respond func(req llm.Request) (llm.Response, error)
}

func (m *mockInvoker) Invoke(_ context.Context, req llm.Request) (llm.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	return m.respond(req)
}

func (m *mockInvoker) Calls() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.calls...)
}

func fixed(text string) func(llm.Request) (llm.Response, error) {
	return func(llm.Request) (llm.Response, error) {
		return llm.Response{Text: text}, nil
	}
}

// schemaFields maps workflow schema names to the single field they carry.
var schemaFields = map[string]string{
	"writing_style":  "writing_style_output",
	"research":       "research_output",
	"writer":         "writer_output",
	"seo_analyzer":   "seo_analyzer_first_pass_output",
	"internal_links": "internal_links_output",
}

// structuredEcho answers schema requests with "<agent> output" in the schema's
// field and free-text requests with "<agent> output".
func structuredEcho(req llm.Request) (llm.Response, error) {
	text := req.Agent.Name + " output"
	if req.Schema == nil {
		return llm.Response{Text: text}, nil
	}

	raw, err := json.Marshal(map[string]string{schemaFields[req.Schema.Name]: text})
	if err != nil {
		return llm.Response{}, err
	}
	return llm.Response{Text: string(raw), Structured: raw}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRunner(t *testing.T, inv llm.Invoker, clock clockwork.Clock, webSearch bool) *pipeline.Runner {
	t.Helper()

	prompts, err := prompt.NewBuilder()
	require.NoError(t, err)

	r, err := pipeline.New(&pipeline.Config{
		Logger:              quietLogger(),
		Invoker:             inv,
		Prompts:             prompts,
		Clock:               clock,
		ResearchConcurrency: 2,
		WebSearch:           webSearch,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)

	return r
}
