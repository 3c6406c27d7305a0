package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/tui/style"
	"github.com/alkime/stylepost/pkg/collections"
)

// ValidateCmd checks a workflow input file.
type ValidateCmd struct {
	File   string `arg:"" optional:"" help:"Input file (JSON or YAML), or - for stdin"`
	Format string `flag:"" help:"Input format: json or yaml (default: from the file extension)"`
	Sample bool   `flag:"" help:"Print a sample input file instead"`
}

// Run executes the validate command.
func (c *ValidateCmd) Run() error {
	if c.Sample {
		fmt.Println(pipeline.SampleInput)
		return nil
	}

	if c.File == "" {
		return errors.New("an input file is required (or pass --sample)")
	}

	raw, err := readSource(c.File)
	if err != nil {
		return err
	}

	in, err := pipeline.DecodeInput(bytes.NewReader(raw), inputFormat(c.Format, c.File))
	if err != nil {
		return err
	}

	fmt.Println(style.Success.Render("✓ Input is valid"))
	fmt.Printf("%s %s\n", style.Label.Render("Blog:"), in.RootBlogURL)
	fmt.Printf("%s %s\n", style.Label.Render("Topics:"), strings.Join(collections.Compact(in.Topics), "; "))
	fmt.Printf("%s %d keywords, %d product pages, %d posts to avoid\n", style.Label.Render("Extras:"),
		len(collections.Compact(in.SEOKeywords)), len(in.TargetProductURLs), len(in.ExistingBlogPostsToAvoid))

	return nil
}
