package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alkime/stylepost/internal/tui/style"
)

// ResearchCmd researches several areas of one topic concurrently.
type ResearchCmd struct {
	Topic string   `flag:"" required:"" help:"Topic to research"`
	Area  []string `flag:"" required:"" help:"Research area; repeat for more areas"`
}

// Run executes the research command.
func (c *ResearchCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := g.setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.runner.Close()

	notes, err := a.runner.Research(ctx, c.Topic, c.Area)
	if err != nil {
		return err
	}

	printed := make(map[string]bool, len(notes))
	for _, area := range c.Area {
		text, ok := notes[area]
		if !ok || printed[area] {
			continue
		}
		printed[area] = true

		fmt.Println(style.Title.Render("## " + area))
		fmt.Println()
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
