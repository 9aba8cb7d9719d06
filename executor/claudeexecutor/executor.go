/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/prreviewer/metrics"
	"chainguard.dev/prreviewer/promptbuilder"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Interface is the public interface for Claude execution.
type Interface[Request promptbuilder.Bindable] interface {
	// Execute performs a single message exchange for the request and
	// returns the concatenated text content of the response.
	Execute(ctx context.Context, request Request) (string, error)
}

// executor is the private implementation.
type executor[Request promptbuilder.Bindable] struct {
	client             anthropic.Client
	modelName          string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	genaiMetrics       *metrics.GenAI
}

// New creates a new executor with minimal required configuration.
func New[Request promptbuilder.Bindable](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request],
) (Interface[Request], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request]{
		client:       client,
		modelName:    "claude-sonnet-4@20250514",
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

	return e, nil
}

// Execute performs exactly one message exchange. A failed call is
// returned to the caller; there is no retry.
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

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(e.modelName),
		MaxTokens:   e.maxTokens,
		Temperature: anthropic.Float(e.temperature),
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	}

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return "", fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	log.With("model", e.modelName).
		With("prompt_length", len(prompt)).
		Info("Requesting Claude message")

	message, err := e.client.Messages.New(ctx, params)
	if err != nil {
		e.genaiMetrics.RecordInference(ctx, e.modelName, false)
		return "", fmt.Errorf("Claude message failed: %w", err)
	}
	e.genaiMetrics.RecordInference(ctx, e.modelName, true)

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	if text.Len() == 0 {
		return "", errors.New("Claude response contained no text content")
	}

	log.With("response_length", text.Len()).Debug("Received Claude message")
	return text.String(), nil
}
