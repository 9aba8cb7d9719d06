/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/prreviewer/metrics"
	"chainguard.dev/prreviewer/promptbuilder"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// Interface is the public interface for OpenAI-compatible execution.
type Interface[Request promptbuilder.Bindable] interface {
	// Execute performs a single chat completion for the request and
	// returns the raw response text.
	Execute(ctx context.Context, request Request) (string, error)
}

// executor is the private implementation.
type executor[Request promptbuilder.Bindable] struct {
	client             openai.Client
	modelName          string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	genaiMetrics       *metrics.GenAI
}

// New creates a new executor with minimal required configuration.
func New[Request promptbuilder.Bindable](
	client openai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request],
) (Interface[Request], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request]{
		client:       client,
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.2,
		genaiMetrics: metrics.NewGenAI("prreviewer.ai"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if e.modelName == "" {
		return nil, errors.New("model is required")
	}

	return e, nil
}

// Execute performs exactly one chat completion. A failed call is returned
// to the caller; there is no retry.
func (e *executor[Request]) Execute(ctx context.Context, request Request) (string, error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return "", fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := boundPrompt.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return "", fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	log.With("model", e.modelName).
		With("prompt_length", len(prompt)).
		Info("Requesting chat completion")

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(e.modelName),
		Messages:    messages,
		Temperature: openai.Float(e.temperature),
		MaxTokens:   openai.Int(e.maxTokens),
	})
	if err != nil {
		e.genaiMetrics.RecordInference(ctx, e.modelName, false)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	e.genaiMetrics.RecordInference(ctx, e.modelName, true)

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	text := completion.Choices[0].Message.Content
	log.With("response_length", len(text)).Debug("Received chat completion")
	return text, nil
}
