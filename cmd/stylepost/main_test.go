package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alkime/stylepost/internal/config"
	"github.com/alkime/stylepost/internal/keyring"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/topics"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

//nolint:gochecknoinits // plain output in assertions
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestInputFormat(t *testing.T) {
	assert.Equal(t, pipeline.FormatYAML, inputFormat("", "request.yml"))
	assert.Equal(t, pipeline.FormatYAML, inputFormat("", "REQUEST.YAML"))
	assert.Equal(t, pipeline.FormatJSON, inputFormat("", "request.json"))
	assert.Equal(t, pipeline.FormatJSON, inputFormat("", "-"))
	assert.Equal(t, pipeline.FormatYAML, inputFormat("yaml", "request.json"))
}

func TestGlobalsConfig(t *testing.T) {
	gokeyring.MockInit()

	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "sk-env")

		g := &Globals{Model: "gpt-4.1", LogLevel: "debug", NoWebSearch: true, OutputDir: "/tmp/out"}
		cfg, err := g.config()
		require.NoError(t, err)

		assert.Equal(t, "gpt-4.1", cfg.Model)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.WebSearch)
		assert.Equal(t, "/tmp/out", cfg.OutputDir)
		assert.Equal(t, "sk-env", cfg.APIKey())
	})

	t.Run("keychain fallback", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openai")
		t.Setenv("ANTHROPIC_API_KEY", "")
		require.NoError(t, keyring.Set(keyring.Anthropic, "ant-keychain"))

		cfg, err := (&Globals{Provider: config.ProviderAnthropic}).config()
		require.NoError(t, err)
		assert.Equal(t, "ant-keychain", cfg.APIKey())
	})

	t.Run("bad provider flag", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "openai")

		_, err := (&Globals{Provider: "ollama"}).config()
		require.Error(t, err)
	})
}

func TestWriteIdeas(t *testing.T) {
	ideas := []topics.TopicIdea{{
		Title:       "Safer Cutting",
		Angle:       "Checklists for busy teams",
		Keywords:    []string{"safety", "box cutter"},
		ContentType: "Guide",
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIdeas(&buf, "table", ideas))
		assert.Contains(t, buf.String(), "TITLE")
		assert.Contains(t, buf.String(), "Safer Cutting")
		assert.Contains(t, buf.String(), "safety, box cutter")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIdeas(&buf, "json", ideas))

		var got []topics.TopicIdea
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, ideas, got)
	})

	t.Run("md", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIdeas(&buf, "md", ideas))
		assert.Contains(t, buf.String(), "## 1. Safer Cutting")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeIdeas(&buf, "table", nil))
		assert.Contains(t, buf.String(), "No topic ideas")
	})
}

func TestPlainProgress(t *testing.T) {
	var buf bytes.Buffer
	onProgress := plainProgress(&buf)

	onProgress(pipeline.Progress{Stage: pipeline.StageStyle, Status: pipeline.StatusCompleted, Percent: 25, Elapsed: 90 * time.Second})
	onProgress(pipeline.Progress{Stage: pipeline.StageWrite, Status: pipeline.StatusFailed, Percent: 50, Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "[ 25%] Analyzing writing style")
	assert.Contains(t, out, "completed 00:01:30")
	assert.Contains(t, out, "Writing draft")
	assert.Contains(t, out, "failed")
}

func TestPrintSaved(t *testing.T) {
	var buf bytes.Buffer
	printSaved(&buf, &pipeline.Result{Elapsed: 6 * time.Minute}, []string{"/tmp/run/remote-work.md"})

	assert.Contains(t, buf.String(), "Finished in 00:06:00")
	assert.Contains(t, buf.String(), "remote-work.md /tmp/run/remote-work.md")
}

func TestOutputDir(t *testing.T) {
	root := t.TempDir()
	a := &app{cfg: &config.Config{OutputDir: root}}

	t.Run("long subject", func(t *testing.T) {
		subject := strings.Repeat("Remote Work For Distributed Teams, ", 16)
		require.Greater(t, len(subject), 500)

		dir, err := a.outputDir("", subject)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, filepath.Join(root, "runs"), filepath.Dir(dir))
	})

	t.Run("explicit directory is created", func(t *testing.T) {
		explicit := filepath.Join(root, "custom", "post")

		dir, err := a.outputDir(explicit, "ignored")
		require.NoError(t, err)
		assert.Equal(t, explicit, dir)
		assert.DirExists(t, explicit)
	})
}
