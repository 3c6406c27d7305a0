package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIInvoker implements Invoker using the OpenAI Chat Completions API.
type OpenAIInvoker struct {
	client      openai.Client
	model       string
	searchModel string
	maxTokens   int64
	log         *slog.Logger
}

// NewOpenAIInvoker creates an OpenAI-backed invoker. Web-search requests use
// searchModel because only the search models accept web_search_options.
// Retries are disabled.
func NewOpenAIInvoker(
	apiKey, model, searchModel string,
	maxTokens int64,
	log *slog.Logger,
	opts ...option.RequestOption,
) *OpenAIInvoker {
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	if searchModel == "" {
		searchModel = string(openai.ChatModelGPT4oSearchPreview)
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &OpenAIInvoker{
		client:      openai.NewClient(opts...),
		model:       model,
		searchModel: searchModel,
		maxTokens:   maxTokens,
		log:         log,
	}
}

// Invoke sends the request as a system + user chat completion.
func (o *OpenAIInvoker) Invoke(ctx context.Context, req Request) (Response, error) {
	params, err := o.params(req)
	if err != nil {
		return Response{}, err
	}

	start := time.Now()
	o.log.Debug("openai call starting",
		"agent", req.Agent.Name,
		"model", params.Model,
		"webSearch", req.Agent.WebSearch,
		"promptLen", len(req.Prompt))

	resp, err := o.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)
	if err != nil {
		o.log.Error("openai call failed", "agent", req.Agent.Name, "duration", duration, "error", err)
		return Response{}, fmt.Errorf("failed to invoke %s agent via OpenAI API: %w", req.Agent.Name, err)
	}
	o.log.Debug("openai call completed", "agent", req.Agent.Name, "duration", duration)

	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("%s agent: %w", req.Agent.Name, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Response{}, fmt.Errorf("%s agent: %w", req.Agent.Name, ErrEmptyResponse)
	}

	if req.Schema == nil {
		return Response{Text: text}, nil
	}

	raw := []byte(text)
	if err := req.Schema.Validate(raw); err != nil {
		return Response{}, err
	}

	return Response{Text: text, Structured: raw}, nil
}

func (o *OpenAIInvoker) params(req Request) (openai.ChatCompletionNewParams, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if req.Agent.Instructions != "" {
		msgs = append(msgs, openai.SystemMessage(req.Agent.Instructions))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		Messages:            msgs,
		MaxCompletionTokens: openai.Int(o.maxTokens),
	}

	if req.Agent.WebSearch {
		params.Model = openai.ChatModel(o.searchModel)
		params.WebSearchOptions = openai.ChatCompletionNewParamsWebSearchOptions{
			SearchContextSize: "medium",
		}
	}

	if req.Schema != nil {
		m, err := req.Schema.Map()
		if err != nil {
			return params, err
		}

		schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   req.Schema.Name,
			Schema: m,
		}
		if req.Schema.Description != "" {
			schemaParam.Description = openai.String(req.Schema.Description)
		}

		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		}
	}

	return params, nil
}
