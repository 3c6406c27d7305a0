package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alkime/stylepost/internal/content"
	"github.com/alkime/stylepost/internal/topics"
	"github.com/alkime/stylepost/internal/tui/style"
	"github.com/alkime/stylepost/pkg/collections"
	"github.com/olekukonko/tablewriter"
)

// TopicsCmd generates topic ideas.
type TopicsCmd struct {
	Reference   string   `flag:"" required:"" help:"Reference blog URL"`
	Keywords    []string `flag:"" sep:"," help:"SEO keywords to target (comma separated)"`
	Product     string   `flag:"" help:"Product or page to promote"`
	Existing    string   `flag:"" type:"existingfile" help:"File listing existing post titles, one per line"`
	Count       int      `flag:"" default:"5" help:"Number of ideas (1-20)"`
	Preferences string   `flag:"" help:"Topic preferences"`
	Output      string   `flag:"" enum:"table,json,md" default:"table" help:"Output format: table, json, or md"`
	Save        bool     `flag:"" help:"Also write topic_ideas.json and topic_ideas.md to a run directory"`
}

// Run executes the topics command.
func (c *TopicsCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var existing []string
	if c.Existing != "" {
		raw, err := readSource(c.Existing)
		if err != nil {
			return err
		}
		existing = collections.SplitCompact(string(raw), "\n")
	}

	a, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.runner.Close()

	ideas, err := a.generator.Generate(ctx, topics.Request{
		ReferenceBlog:  c.Reference,
		Preferences:    c.Preferences,
		Keywords:       c.Keywords,
		ProductTarget:  c.Product,
		ExistingTopics: existing,
		Count:          c.Count,
	})
	if err != nil {
		return err
	}

	if err := writeIdeas(os.Stdout, c.Output, ideas); err != nil {
		return err
	}

	if c.Save {
		dir, err := a.outputDir("", "topics")
		if err != nil {
			return err
		}
		paths, err := content.WriteTopics(dir, ideas)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(os.Stderr, "%s %s\n", style.Label.Render("Saved:"), style.Muted.Render(path))
		}
	}

	return nil
}

func writeIdeas(w io.Writer, format string, ideas []topics.TopicIdea) error {
	switch format {
	case "json":
		raw, err := content.TopicsJSON(ideas)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	case "md":
		_, err := io.WriteString(w, topics.Format(ideas))
		return err
	default:
		renderTable(w, ideas)
		return nil
	}
}

// renderTable prints ideas as a table, one row per idea.
func renderTable(w io.Writer, ideas []topics.TopicIdea) {
	if len(ideas) == 0 {
		fmt.Fprintln(w, "No topic ideas could be parsed from the model output.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetHeader([]string{"#", "Title", "Type", "Keywords", "Angle"})

	for i, idea := range ideas {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			idea.Title,
			idea.ContentType,
			strings.Join(idea.Keywords, ", "),
			idea.Angle,
		})
	}

	table.Render()
}
