package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/stylepost/internal/llm"
	"github.com/alkime/stylepost/internal/metrics"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/alkime/stylepost/pkg/collections"
)

// Research runs one research call per area concurrently and returns the notes
// keyed by area. Calls share nothing; the first error fails the whole batch.
func (r *Runner) Research(ctx context.Context, topic string, areas []string) (map[string]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	areas = dedupe(collections.Compact(areas))
	if len(areas) == 0 {
		return nil, fmt.Errorf("%w: at least one research area is required", ErrInvalidInput)
	}

	agent, err := r.agent(prompt.Research, true)
	if err != nil {
		return nil, err
	}

	r.log.Info("parallel research starting", "topic", topic, "areas", len(areas))

	group := r.pool.NewGroupContext(ctx)
	for _, area := range areas {
		area := area

		group.SubmitErr(func() (string, error) {
			metrics.ResearchTasksInFlight.Inc()
			defer metrics.ResearchTasksInFlight.Dec()

			text, err := r.cfg.Prompts.Render(prompt.ResearchArea, prompt.ResearchAreaData{Topic: topic, Area: area})
			if err != nil {
				return "", err
			}

			resp, err := r.cfg.Invoker.Invoke(ctx, llm.Request{Agent: agent, Prompt: text})
			if err != nil {
				return "", fmt.Errorf("failed to research %q: %w", area, err)
			}

			return resp.Text, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	notes := make(map[string]string, len(areas))
	for i, area := range areas {
		notes[area] = results[i]
	}

	r.log.Info("parallel research completed", "topic", topic, "areas", len(areas))

	return notes, nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
