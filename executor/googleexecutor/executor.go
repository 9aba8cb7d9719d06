/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/prreviewer/metrics"
	"chainguard.dev/prreviewer/promptbuilder"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Interface is the public interface for Gemini execution.
type Interface[Request promptbuilder.Bindable] interface {
	// Execute performs a single content generation for the request and
	// returns the response text.
	Execute(ctx context.Context, request Request) (string, error)
}

// executor is the private implementation.
type executor[Request promptbuilder.Bindable] struct {
	client             *genai.Client
	model              string
	prompt             *promptbuilder.Prompt
	systemInstructions *promptbuilder.Prompt
	temperature        float32
	maxOutputTokens    int32
	genaiMetrics       *metrics.GenAI
}

// New creates a new executor with minimal required configuration.
func New[Request promptbuilder.Bindable](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request],
) (Interface[Request], error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request]{
		client:          client,
		model:           "gemini-2.5-flash",
		prompt:          prompt,
		temperature:     0.2,
		maxOutputTokens: 8192,
		genaiMetrics:    metrics.NewGenAI("prreviewer.ai"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return e, nil
}

// Execute performs exactly one content generation. A failed call is
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

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	}
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return "", fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	log.With("model", e.model).
		With("prompt_length", len(prompt)).
		Info("Requesting Gemini content generation")

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
	if err != nil {
		e.genaiMetrics.RecordInference(ctx, e.model, false)
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}
	e.genaiMetrics.RecordInference(ctx, e.model, true)

	if resp.UsageMetadata != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("Gemini response contained no text content")
	}

	log.With("response_length", len(text)).Debug("Received Gemini response")
	return text, nil
}
