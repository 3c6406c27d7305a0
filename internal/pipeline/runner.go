// Package pipeline runs the fixed sequence of agent stages that turns a blog
// request into a style-matched post.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/metrics"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/jonboulle/clockwork"
)

// Config holds the configuration for the runner.
type Config struct {
	Logger  *slog.Logger
	Invoker llm.Invoker
	Prompts *prompt.Builder
	Clock   clockwork.Clock
	// ResearchConcurrency bounds the fan-out research pool (default 4).
	ResearchConcurrency int
	// WebSearch enables web search on the stages that declare it.
	WebSearch bool
}

// StageReport is the per-stage summary kept on a successful result.
type StageReport struct {
	Stage   StageName     `json:"stage"`
	Elapsed time.Duration `json:"elapsed"`
}

// Result holds the terminal fields of a run. On failure only Variant,
// Elapsed and Error are set.
type Result struct {
	Variant     Variant       `json:"variant"`
	StyleGuide  string        `json:"style_guide,omitempty"`
	Research    string        `json:"research,omitempty"`
	Draft       string        `json:"draft,omitempty"`
	SEOAnalysis string        `json:"seo_analysis,omitempty"`
	LinkedDraft string        `json:"linked_draft,omitempty"`
	Final       string        `json:"final,omitempty"`
	Stages      []StageReport `json:"stages,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	Error       string        `json:"error,omitempty"`
}

// Runner executes stage lists against an invoker.
type Runner struct {
	cfg   *Config
	log   *slog.Logger
	clock clockwork.Clock
	pool  pond.ResultPool[string]
}

// New creates a new Runner.
func New(cfg *Config) (*Runner, error) {
	if cfg.Invoker == nil {
		return nil, errors.New("invoker is required")
	}
	if cfg.Prompts == nil {
		return nil, errors.New("prompts are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.ResearchConcurrency <= 0 {
		cfg.ResearchConcurrency = 4
	}

	return &Runner{
		cfg:   cfg,
		log:   cfg.Logger,
		clock: cfg.Clock,
		pool:  pond.NewResultPool[string](cfg.ResearchConcurrency),
	}, nil
}

// Close stops the research pool after in-flight tasks finish.
func (r *Runner) Close() {
	r.pool.StopAndWait()
}

// Run executes every stage of variant in order. The first failing stage ends
// the run: the returned Result carries only the error and elapsed time, and
// the error is a *StageError. Input errors are returned before any call.
func (r *Runner) Run(ctx context.Context, variant Variant, in Input, onProgress ProgressCallback) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	stages, err := Stages(variant)
	if err != nil {
		return nil, err
	}
	if err := ValidateOrder(stages); err != nil {
		return nil, err
	}

	if onProgress == nil {
		onProgress = func(Progress) {}
	}

	start := r.clock.Now()
	state := NewState(in)
	reports := make([]StageReport, 0, len(stages))

	r.log.Info("pipeline run starting", "variant", variant, "topic", in.Topic(), "reference", in.RootBlogURL)

	for i, st := range stages {
		onProgress(Progress{
			Stage:   st.Name,
			Index:   i,
			Total:   len(stages),
			Status:  StatusStarted,
			Percent: percent(i, len(stages)),
			Elapsed: r.clock.Since(start),
		})

		stageStart := r.clock.Now()
		value, err := r.runStage(ctx, st, state)
		stageElapsed := r.clock.Since(stageStart)
		metrics.StageDuration.WithLabelValues(string(variant), string(st.Name)).Observe(stageElapsed.Seconds())

		if err == nil {
			err = state.Set(st.Name, value)
		}

		if err != nil {
			stageErr := &StageError{Stage: st.Name, Err: err}
			elapsed := r.clock.Since(start)

			metrics.StageFailures.WithLabelValues(string(variant), string(st.Name)).Inc()
			metrics.PipelineRuns.WithLabelValues(string(variant), "error").Inc()
			r.log.Error("pipeline stage failed", "variant", variant, "stage", st.Name, "elapsed", FormatElapsed(elapsed), "error", err)

			onProgress(Progress{
				Stage:   st.Name,
				Index:   i,
				Total:   len(stages),
				Status:  StatusFailed,
				Percent: percent(i, len(stages)),
				Elapsed: elapsed,
				Err:     stageErr,
			})

			return &Result{Variant: variant, Elapsed: elapsed, Error: stageErr.Error()}, stageErr
		}

		reports = append(reports, StageReport{Stage: st.Name, Elapsed: stageElapsed})
		r.log.Info("pipeline stage completed", "variant", variant, "stage", st.Name, "elapsed", FormatElapsed(stageElapsed))

		onProgress(Progress{
			Stage:   st.Name,
			Index:   i,
			Total:   len(stages),
			Status:  StatusCompleted,
			Percent: percent(i+1, len(stages)),
			Elapsed: r.clock.Since(start),
		})
	}

	result := &Result{
		Variant: variant,
		Stages:  reports,
		Elapsed: r.clock.Since(start),
	}
	result.StyleGuide, _ = state.Get(StageStyle)
	result.Research, _ = state.Get(StageResearch)
	result.Draft, _ = state.Get(StageWrite)
	result.SEOAnalysis, _ = state.Get(StageSEO)
	result.LinkedDraft, _ = state.Get(StageLinks)
	result.Final, _ = state.Get(StageEdit)

	metrics.PipelineRuns.WithLabelValues(string(variant), "ok").Inc()
	r.log.Info("pipeline run completed", "variant", variant, "elapsed", FormatElapsed(result.Elapsed))

	return result, nil
}

func (r *Runner) runStage(ctx context.Context, st Stage, state *State) (string, error) {
	data, err := state.View(st.Reads)
	if err != nil {
		return "", err
	}

	text, err := r.cfg.Prompts.Render(st.Template, data)
	if err != nil {
		return "", err
	}

	agent, err := r.agent(st.Agent, st.WebSearch)
	if err != nil {
		return "", err
	}

	resp, err := r.cfg.Invoker.Invoke(ctx, llm.Request{
		Agent:  agent,
		Prompt: text,
		Schema: st.Output.Schema,
	})
	if err != nil {
		return "", err
	}

	value, err := st.Output.Extract(resp)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", llm.ErrEmptyResponse
	}

	return value, nil
}

func (r *Runner) agent(name string, webSearch bool) (llm.Agent, error) {
	instructions, err := r.cfg.Prompts.Instructions(name)
	if err != nil {
		return llm.Agent{}, err
	}

	return llm.Agent{
		Name:         name,
		Instructions: instructions,
		WebSearch:    webSearch && r.cfg.WebSearch,
	}, nil
}

// ParseInput converts a free-text request into an Input with one structured
// model call. The result is validated like any decoded input.
func (r *Runner) ParseInput(ctx context.Context, text string) (Input, error) {
	if strings.TrimSpace(text) == "" {
		return Input{}, fmt.Errorf("%w: request text is empty", ErrInvalidInput)
	}

	rendered, err := r.cfg.Prompts.Render(prompt.ParseInput, prompt.ParseInputData{Text: text})
	if err != nil {
		return Input{}, err
	}

	agent, err := r.agent(prompt.ParseInput, false)
	if err != nil {
		return Input{}, err
	}

	resp, err := r.cfg.Invoker.Invoke(ctx, llm.Request{
		Agent:  agent,
		Prompt: rendered,
		Schema: inputSchema,
	})
	if err != nil {
		return Input{}, fmt.Errorf("failed to parse request: %w", err)
	}

	in, err := llm.Decode[Input](resp)
	if err != nil {
		return Input{}, fmt.Errorf("failed to parse request: %w", err)
	}

	if err := in.Validate(); err != nil {
		return Input{}, err
	}

	return in, nil
}

var inputSchema = llm.MustSchema[Input]("blog_request", "Structured blog request")
