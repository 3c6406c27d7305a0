package server

import (
	"context"

	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/topics"
)

// Service is the work the HTTP layer delegates to.
type Service interface {
	Run(ctx context.Context, variant pipeline.Variant, in pipeline.Input) (*pipeline.Result, error)
	ParseInput(ctx context.Context, text string) (pipeline.Input, error)
	Research(ctx context.Context, topic string, areas []string) (map[string]string, error)
	GenerateTopics(ctx context.Context, req topics.Request) ([]topics.TopicIdea, error)
}

type service struct {
	runner    *pipeline.Runner
	generator *topics.Generator
}

// NewService adapts a runner and a topic generator to Service.
func NewService(runner *pipeline.Runner, generator *topics.Generator) Service {
	return &service{runner: runner, generator: generator}
}

func (s *service) Run(ctx context.Context, variant pipeline.Variant, in pipeline.Input) (*pipeline.Result, error) {
	// HTTP callers have no progress view.
	return s.runner.Run(ctx, variant, in, nil)
}

func (s *service) ParseInput(ctx context.Context, text string) (pipeline.Input, error) {
	return s.runner.ParseInput(ctx, text)
}

func (s *service) Research(ctx context.Context, topic string, areas []string) (map[string]string, error) {
	return s.runner.Research(ctx, topic, areas)
}

func (s *service) GenerateTopics(ctx context.Context, req topics.Request) ([]topics.TopicIdea, error) {
	return s.generator.Generate(ctx, req)
}
