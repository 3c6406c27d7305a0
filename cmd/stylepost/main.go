package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/stylepost/internal/config"
	"github.com/alkime/stylepost/internal/keyring"
	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/logger"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/alkime/stylepost/internal/topics"
	"github.com/alkime/stylepost/internal/workdir"
)

// CLI defines the stylepost command structure.
type CLI struct {
	Globals

	Post     PostCmd     `cmd:"" help:"Write a post in the style of a reference blog"`
	Workflow WorkflowCmd `cmd:"" help:"Run the full workflow (SEO and internal links) from an input file"`
	Topics   TopicsCmd   `cmd:"" help:"Generate topic ideas for a reference blog"`
	Research ResearchCmd `cmd:"" help:"Research several areas of a topic in parallel"`
	Validate ValidateCmd `cmd:"" help:"Check a workflow input file without calling a model"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// Globals are flags shared by every command. Empty values fall back to the
// environment (and .env) via config.LoadConfig.
type Globals struct {
	Provider    string `flag:"" help:"Model provider: openai or anthropic (default: LLM_PROVIDER or openai)"`
	Model       string `flag:"" help:"Model name (provider default when empty)"`
	LogLevel    string `flag:"" help:"Log level: debug, info, warn, error"`
	NoWebSearch bool   `flag:"" help:"Disable web search on every stage"`
	OutputDir   string `flag:"" help:"Base output directory (default: ~/Documents/Stylepost)"`
}

// app holds the collaborators a command needs.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	runner    *pipeline.Runner
	generator *topics.Generator
}

// setup loads configuration, resolves the API key, and builds the runner.
// Logs go to logOut; the TUI passes a file so the terminal stays clean.
func (g *Globals) setup(logOut io.Writer) (*app, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}

	log := logger.NewCLILogger(logOut, cfg.LogLevel)

	invoker, err := llm.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: set %s or run 'stylepost config set-key %s <key>'",
			err, envKeyName(cfg.Provider), cfg.Provider)
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	runner, err := pipeline.New(&pipeline.Config{
		Logger:              log,
		Invoker:             invoker,
		Prompts:             prompts,
		ResearchConcurrency: cfg.ResearchConcurrency,
		WebSearch:           cfg.WebSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline runner: %w", err)
	}

	return &app{
		cfg:       cfg,
		log:       log,
		runner:    runner,
		generator: topics.NewGenerator(log, invoker, prompts, cfg.WebSearch),
	}, nil
}

// config merges flags over the environment and resolves the API key,
// falling back to the keychain.
func (g *Globals) config() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if g.Provider != "" {
		cfg.Provider = g.Provider
	}
	if g.Model != "" {
		cfg.Model = g.Model
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.NoWebSearch {
		cfg.WebSearch = false
	}
	if g.OutputDir != "" {
		cfg.OutputDir = g.OutputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	key, err := keyring.Resolve(cfg.Provider, cfg.APIKey())
	if err != nil {
		slog.Debug("keychain lookup failed", "provider", cfg.Provider, "error", err)
	}

	if cfg.Provider == config.ProviderAnthropic {
		cfg.AnthropicAPIKey = key
	} else {
		cfg.OpenAIAPIKey = key
	}

	return cfg, nil
}

// outputDir creates and returns explicit when set, else a fresh dated run
// directory.
func (a *app) outputDir(explicit, subject string) (string, error) {
	if explicit != "" {
		if err := os.MkdirAll(explicit, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", explicit, err)
		}
		return explicit, nil
	}

	root, err := workdir.Root(a.cfg.OutputDir)
	if err != nil {
		return "", err
	}

	return workdir.Prep(root, workdir.RunName(now(), subject))
}

func envKeyName(provider string) string {
	if provider == config.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// readSource reads a file argument; "-" means stdin.
func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}

// inputFormat picks the decoder: an explicit flag wins, then the extension.
func inputFormat(flag, path string) string {
	if flag != "" {
		return flag
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return pipeline.FormatYAML
	default:
		return pipeline.FormatJSON
	}
}

func main() {
	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("stylepost"),
		kong.Description("Write blog posts in the voice of an existing blog."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
