package topics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/alkime/stylepost/internal/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInvoker struct {
	mu    sync.Mutex
	reqs  []llm.Request
	reply string
	err   error
}

func (m *mockInvoker) Invoke(_ context.Context, req llm.Request) (llm.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return llm.Response{}, m.err
	}
	return llm.Response{Text: m.reply}, nil
}

func newGenerator(t *testing.T, inv llm.Invoker) *topics.Generator {
	t.Helper()
	prompts, err := prompt.NewBuilder()
	require.NoError(t, err)
	return topics.NewGenerator(slog.New(slog.NewTextHandler(io.Discard, nil)), inv, prompts, true)
}

func TestGenerate(t *testing.T) {
	inv := &mockInvoker{reply: wellFormed}
	g := newGenerator(t, inv)

	ideas, err := g.Generate(context.Background(), topics.Request{
		ReferenceBlog: "ExampleBlog.com",
		Preferences:   "Remote Work",
		Count:         3,
	})
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "The Hidden Cost of Dull Blades", ideas[0].Title)

	require.Len(t, inv.reqs, 1)
	req := inv.reqs[0]
	assert.Equal(t, "topics", req.Agent.Name)
	assert.True(t, req.Agent.WebSearch)
	assert.NotEmpty(t, req.Agent.Instructions)
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Prompt, "Generate 3 topic ideas for the blog: ExampleBlog.com")
	assert.Contains(t, req.Prompt, "Remote Work")
}

func TestGenerate_FreeTextYieldsNoIdeas(t *testing.T) {
	inv := &mockInvoker{reply: "Remote work has moved from perk to default.\n\nTeams that write things down win."}
	g := newGenerator(t, inv)

	ideas, err := g.Generate(context.Background(), topics.Request{ReferenceBlog: "ExampleBlog.com", Count: 3})
	require.NoError(t, err)
	assert.Empty(t, ideas)
}

func TestGenerate_RemoteWorkThreeIdeas(t *testing.T) {
	inv := &mockInvoker{reply: "Remote work has moved from perk to default for knowledge teams.\n\n" +
		"The teams that thrive write things down and trust each other with their calendars."}
	g := newGenerator(t, inv)

	ideas, err := g.Generate(context.Background(), topics.Request{
		ReferenceBlog: "ExampleBlog.com",
		Preferences:   "Remote Work",
		Count:         3,
	})
	require.NoError(t, err)
	assert.Empty(t, ideas)

	require.Len(t, inv.reqs, 1)
	assert.Contains(t, inv.reqs[0].Prompt, "Generate 3 topic ideas for the blog: ExampleBlog.com")
	assert.Contains(t, inv.reqs[0].Prompt, "Remote Work")
}

func TestGenerate_ClampsCount(t *testing.T) {
	inv := &mockInvoker{reply: ""}
	g := newGenerator(t, inv)

	_, err := g.Generate(context.Background(), topics.Request{ReferenceBlog: "ExampleBlog.com", Count: 99})
	require.NoError(t, err)
	assert.Contains(t, inv.reqs[0].Prompt, "Generate 20 topic ideas")
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("missing reference", func(t *testing.T) {
		inv := &mockInvoker{}
		g := newGenerator(t, inv)

		_, err := g.Generate(context.Background(), topics.Request{ReferenceBlog: "  "})
		require.ErrorIs(t, err, topics.ErrInvalidRequest)
		assert.Empty(t, inv.reqs)
	})

	t.Run("model failure propagates", func(t *testing.T) {
		boom := errors.New("insufficient_quota")
		g := newGenerator(t, &mockInvoker{err: boom})

		_, err := g.Generate(context.Background(), topics.Request{ReferenceBlog: "ExampleBlog.com"})
		require.ErrorIs(t, err, boom)
	})
}

func TestPrompt_ElidesEmptyContext(t *testing.T) {
	g := newGenerator(t, &mockInvoker{})

	out, err := g.Prompt(topics.Request{
		ReferenceBlog:  "ExampleBlog.com",
		Keywords:       []string{},
		ProductTarget:  "",
		ExistingTopics: nil,
	})
	require.NoError(t, err)

	assert.NotContains(t, out, "TARGET KEYWORDS")
	assert.NotContains(t, out, "PRODUCT/SERVICE TO PROMOTE")
	assert.NotContains(t, out, "EXISTING BLOG POSTS")
}
