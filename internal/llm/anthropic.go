package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const webSearchMaxUses = 5

// AnthropicInvoker implements Invoker using the Anthropic Messages API.
type AnthropicInvoker struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// NewAnthropicInvoker creates an Anthropic-backed invoker. Retries are disabled.
func NewAnthropicInvoker(
	apiKey, model string,
	maxTokens int64,
	log *slog.Logger,
	opts ...option.RequestOption,
) *AnthropicInvoker {
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &AnthropicInvoker{
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(model),
		maxTokens: maxTokens,
		log:       log,
	}
}

// Invoke sends the request to Claude.
func (a *AnthropicInvoker) Invoke(ctx context.Context, req Request) (Response, error) {
	params, err := a.params(req)
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	a.log.Debug("anthropic call starting",
		"agent", req.Agent.Name,
		"model", a.model,
		"webSearch", req.Agent.WebSearch,
		"promptLen", len(req.Prompt))

	msg, err := a.client.Messages.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		a.log.Error("anthropic call failed", "agent", req.Agent.Name, "duration", duration, "error", err)
		return Response{}, fmt.Errorf("failed to invoke %s agent via Anthropic API: %w", req.Agent.Name, err)
	}
	a.log.Debug("anthropic call completed", "agent", req.Agent.Name, "duration", duration, "stopReason", msg.StopReason)

	if msg.StopReason == anthropic.StopReasonPauseTurn {
		a.log.Warn("anthropic turn paused", "agent", req.Agent.Name, "duration", duration)
		return Response{}, fmt.Errorf("%s agent: %w", req.Agent.Name, ErrPausedTurn)
	}

	if len(msg.Content) == 0 {
		return Response{}, fmt.Errorf("%s agent: %w", req.Agent.Name, ErrEmptyResponse)
	}

	if req.Schema != nil {
		return parseToolUse(msg.Content, req.Schema)
	}

	var texts []string
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			texts = append(texts, text.Text)
		}
	}

	out := strings.TrimSpace(strings.Join(texts, ""))
	if out == "" {
		return Response{}, fmt.Errorf("%s agent: %w", req.Agent.Name, ErrEmptyResponse)
	}

	return Response{Text: out}, nil
}

func (a *AnthropicInvoker) params(req Request) (anthropic.MessageNewParams, error) {
	prompt := req.Prompt
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
	}

	if req.Agent.Instructions != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.Agent.Instructions},
		}
	}

	if req.Agent.WebSearch {
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{
			OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{
				MaxUses: anthropic.Int(webSearchMaxUses),
			},
		})
	}

	if req.Schema != nil {
		tool, err := schemaTool(req.Schema)
		if err != nil {
			return params, err
		}
		params.Tools = append(params.Tools, tool)

		// A forced tool choice would prevent searching first.
		if req.Agent.WebSearch {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{}}
			prompt += fmt.Sprintf("\n\nWhen you are done, call the %s tool with your final answer.", req.Schema.Name)
		} else {
			params.ToolChoice = anthropic.ToolChoiceParamOfTool(req.Schema.Name)
		}
	}

	params.Messages = []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	return params, nil
}

// schemaTool wraps a schema as a tool whose input is the structured answer.
func schemaTool(s *Schema) (anthropic.ToolUnionParam, error) {
	m, err := s.Map()
	if err != nil {
		return anthropic.ToolUnionParam{}, err
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Properties: m["properties"],
	}
	if required, ok := m["required"].([]any); ok {
		for _, r := range required {
			if name, ok := r.(string); ok {
				inputSchema.Required = append(inputSchema.Required, name)
			}
		}
	}

	tool := anthropic.ToolUnionParamOfTool(inputSchema, s.Name)
	if s.Description != "" {
		tool.OfTool.Description = anthropic.String(s.Description)
	}

	return tool, nil
}

// parseToolUse extracts the schema tool's input from response content blocks.
func parseToolUse(content []anthropic.ContentBlockUnion, s *Schema) (Response, error) {
	for _, block := range content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != s.Name {
			continue
		}

		inputBytes, err := json.Marshal(toolUse.Input)
		if err != nil {
			return Response{}, fmt.Errorf("failed to marshal tool input: %w", err)
		}

		if err := s.Validate(inputBytes); err != nil {
			return Response{}, err
		}

		return Response{Text: string(inputBytes), Structured: inputBytes}, nil
	}

	return Response{}, fmt.Errorf("%w: no %s tool use found in Anthropic API response", ErrSchemaMismatch, s.Name)
}
