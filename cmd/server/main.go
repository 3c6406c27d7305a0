package main

import (
	"log"

	"github.com/alkime/stylepost/internal/config"
	"github.com/alkime/stylepost/internal/llm"
	applog "github.com/alkime/stylepost/internal/logger"
	"github.com/alkime/stylepost/internal/pipeline"
	"github.com/alkime/stylepost/internal/prompt"
	"github.com/alkime/stylepost/internal/server"
	"github.com/alkime/stylepost/internal/topics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logger := applog.SetupLogger(cfg)

	// Log startup information
	logger.Info("Starting Stylepost server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.Provider,
		"web_search", cfg.WebSearch,
	)

	invoker, err := llm.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create model client", "provider", cfg.Provider, "error", err)
		log.Fatalf("Fatal: %v", err)
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		log.Fatalf("Fatal: failed to load prompts: %v", err)
	}

	runner, err := pipeline.New(&pipeline.Config{
		Logger:              logger,
		Invoker:             invoker,
		Prompts:             prompts,
		ResearchConcurrency: cfg.ResearchConcurrency,
		WebSearch:           cfg.WebSearch,
	})
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	defer runner.Close()

	generator := topics.NewGenerator(logger, invoker, prompts, cfg.WebSearch)

	srv := server.New(cfg, logger, server.NewService(runner, generator))

	// Start server
	if err := server.Run(srv); err != nil {
		logger.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
