package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alkime/stylepost/internal/content"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/tui"
	"github.com/alkime/stylepost/internal/tui/style"
	"github.com/alkime/stylepost/pkg/collections"
	tea "github.com/charmbracelet/bubbletea"
)

// now is the wall clock used for run directory names and frontmatter dates.
var now = time.Now

// errCancelled is returned when the user quits the progress view.
var errCancelled = errors.New("run cancelled")

// PostCmd runs the four-stage post variant.
type PostCmd struct {
	Topic        string `flag:"" required:"" help:"Post topic"`
	Reference    string `flag:"" required:"" help:"Reference blog URL whose style to match"`
	Requirements string `flag:"" help:"Extra writing requirements"`
	Plain        bool   `flag:"" help:"Print progress lines instead of the interactive view"`
	Out          string `flag:"" help:"Output directory (default: a dated run directory)"`
}

// Run executes the post command.
func (c *PostCmd) Run(g *Globals) error {
	in := pipeline.Input{
		RootBlogURL:         c.Reference,
		Topics:              []string{c.Topic},
		WritingRequirements: c.Requirements,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	return execute(g, pipeline.VariantPost, in, c.Plain, c.Out, "")
}

// WorkflowCmd runs the six-stage workflow variant from an input file.
type WorkflowCmd struct {
	File   string `arg:"" help:"Input file (JSON or YAML), or - for stdin"`
	Format string `flag:"" help:"Input format: json or yaml (default: from the file extension)"`
	Text   bool   `flag:"" help:"Treat the file as a free-text request and let the model fill in the input record"`
	Plain  bool   `flag:"" help:"Print progress lines instead of the interactive view"`
	Out    string `flag:"" help:"Output directory (default: a dated run directory)"`
}

// Run executes the workflow command.
func (c *WorkflowCmd) Run(g *Globals) error {
	raw, err := readSource(c.File)
	if err != nil {
		return err
	}

	if c.Text {
		return execute(g, pipeline.VariantWorkflow, pipeline.Input{}, c.Plain, c.Out, string(raw))
	}

	in, err := pipeline.DecodeInput(bytes.NewReader(raw), inputFormat(c.Format, c.File))
	if err != nil {
		return err
	}

	return execute(g, pipeline.VariantWorkflow, in, c.Plain, c.Out, "")
}

// execute runs one variant and writes its artifacts. When request is set the
// input record is first parsed from it.
func execute(g *Globals, variant pipeline.Variant, in pipeline.Input, plain bool, out, request string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logOut := io.Writer(os.Stderr)
	if !plain {
		// The interactive view owns the terminal; logs go to a temp file.
		logFile, err := os.CreateTemp("", "stylepost-*.log")
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer logFile.Close()
		logOut = logFile
		fmt.Fprintln(os.Stderr, style.Muted.Render("Logs: "+logFile.Name()))
	}

	a, err := g.setup(logOut)
	if err != nil {
		return err
	}
	defer a.runner.Close()

	if request != "" {
		fmt.Fprintln(os.Stderr, style.Subtitle.Render("Parsing request..."))
		if in, err = a.runner.ParseInput(ctx, request); err != nil {
			return err
		}
	}

	// The output directory is prepared before any stage runs, so a bad path
	// fails fast instead of after every model call has been paid for.
	dir, err := a.outputDir(out, in.Topic())
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if plain {
		res, err = a.runner.Run(ctx, variant, in, plainProgress(os.Stderr))
	} else {
		res, err = runInteractive(ctx, a, variant, in)
	}
	if err != nil {
		if out == "" {
			// only removes the run directory when nothing was written to it
			_ = os.Remove(dir)
		}
		if res != nil {
			return fmt.Errorf("%w (after %s)", err, pipeline.FormatElapsed(res.Elapsed))
		}
		return err
	}

	paths, err := content.WriteRun(dir, in, res, now())
	if err != nil {
		return err
	}

	printSaved(os.Stdout, res, paths)

	return nil
}

// runInteractive drives the runner from a goroutine while the progress view
// owns the terminal. Quitting the view cancels the run.
func runInteractive(ctx context.Context, a *app, variant pipeline.Variant, in pipeline.Input) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stages, err := pipeline.Stages(variant)
	if err != nil {
		return nil, err
	}
	names := collections.Apply(stages, func(s pipeline.Stage) pipeline.StageName {
		return s.Name
	})

	p := tea.NewProgram(tui.New(fmt.Sprintf("Writing (%s): %s", variant, in.Topic()), names), tea.WithOutput(os.Stderr))

	var (
		res    *pipeline.Result
		runErr error
		done   = make(chan struct{})
	)

	go func() {
		defer close(done)

		res, runErr = a.runner.Run(ctx, variant, in, tui.Progress(p.Send))

		var elapsed time.Duration
		if res != nil {
			elapsed = res.Elapsed
		}
		p.Send(tui.DoneMsg{Elapsed: elapsed, Err: runErr})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("failed to run progress view: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.Cancelled() {
		cancel()
		<-done
		return nil, errCancelled
	}

	<-done

	return res, runErr
}

// plainProgress prints one line per stage transition.
func plainProgress(w io.Writer) pipeline.ProgressCallback {
	return func(p pipeline.Progress) {
		fmt.Fprintf(w, "[%3d%%] %-24s %-9s %s\n",
			p.Percent, tui.StageLabel(p.Stage), p.Status, pipeline.FormatElapsed(p.Elapsed))
	}
}

func printSaved(w io.Writer, res *pipeline.Result, paths []string) {
	fmt.Fprintln(w, style.Success.Render("✓ Finished in "+pipeline.FormatElapsed(res.Elapsed)))
	fmt.Fprintln(w)

	for _, path := range paths {
		fmt.Fprintf(w, "%s %s %s\n",
			style.Bullet.Render("•"), style.Label.Render(filepath.Base(path)), style.Muted.Render(path))
	}
}
