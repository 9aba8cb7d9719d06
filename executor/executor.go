/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package executor selects and constructs the inference backend for a
// review run. The model name determines the provider:
//   - Models starting with "claude-" use Anthropic's SDK
//   - Models starting with "gemini-" use Google's GenAI SDK
//   - Anything else is treated as an OpenAI-compatible endpoint
//
// All providers are pointed at the configured LLM endpoint; there is no
// default public endpoint.
package executor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chainguard.dev/prreviewer/executor/claudeexecutor"
	"chainguard.dev/prreviewer/executor/googleexecutor"
	"chainguard.dev/prreviewer/executor/openaiexecutor"
	"chainguard.dev/prreviewer/promptbuilder"
	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

// Interface is the provider-independent contract for one completion.
type Interface[Request promptbuilder.Bindable] interface {
	// Execute binds the request into the user prompt, performs exactly one
	// inference call, and returns the raw completion text. Failures are
	// returned as-is; callers decide fatality. There is no retry.
	Execute(ctx context.Context, request Request) (string, error)
}

// Options configures the executor built by New.
type Options struct {
	// Endpoint is the base URL of the inference service (LLM_ENDPOINT).
	Endpoint string
	// APIKey authenticates against the inference service. Optional.
	APIKey string
	// Model selects the inference target and, by prefix, the provider.
	Model string
	// Temperature for sampling.
	Temperature float64
	// MaxTokens caps the completion length.
	MaxTokens int64
	// Timeout bounds the underlying HTTP client.
	Timeout time.Duration

	// SystemInstructions is the fully bound system prompt.
	SystemInstructions *promptbuilder.Prompt
	// UserPrompt is the user template the request binds into.
	UserPrompt *promptbuilder.Prompt
}

// New constructs the executor for the given options, dispatching on the
// model name prefix.
func New[Request promptbuilder.Bindable](ctx context.Context, opts Options) (Interface[Request], error) {
	if opts.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if opts.Model == "" {
		return nil, errors.New("model is required")
	}

	httpClient := &http.Client{Timeout: opts.Timeout}
	modelLower := strings.ToLower(opts.Model)

	switch {
	case strings.HasPrefix(modelLower, "claude-"):
		clientOpts := []anthropicopt.RequestOption{
			anthropicopt.WithBaseURL(opts.Endpoint),
			anthropicopt.WithHTTPClient(httpClient),
			// The SDK retries transient errors by default; inference
			// failures here are fatal, so turn that off.
			anthropicopt.WithMaxRetries(0),
		}
		if opts.APIKey != "" {
			clientOpts = append(clientOpts, anthropicopt.WithAPIKey(opts.APIKey))
		}
		client := anthropic.NewClient(clientOpts...)
		return claudeexecutor.New[Request](client, opts.UserPrompt,
			claudeexecutor.WithModel[Request](opts.Model),
			claudeexecutor.WithTemperature[Request](opts.Temperature),
			claudeexecutor.WithMaxTokens[Request](opts.MaxTokens),
			claudeexecutor.WithSystemInstructions[Request](opts.SystemInstructions),
		)

	case strings.HasPrefix(modelLower, "gemini-"):
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      opts.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  httpClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: opts.Endpoint},
		})
		if err != nil {
			return nil, fmt.Errorf("creating GenAI client: %w", err)
		}
		return googleexecutor.New[Request](client, opts.UserPrompt,
			googleexecutor.WithModel[Request](opts.Model),
			googleexecutor.WithTemperature[Request](float32(opts.Temperature)),
			googleexecutor.WithMaxOutputTokens[Request](int32(opts.MaxTokens)),
			googleexecutor.WithSystemInstructions[Request](opts.SystemInstructions),
		)

	default:
		// Self-hosted models (granite, llama, ...) are served behind
		// OpenAI-compatible endpoints, so chat completions is the fallback
		// for any other model name.
		clientOpts := []openaiopt.RequestOption{
			openaiopt.WithBaseURL(opts.Endpoint),
			openaiopt.WithHTTPClient(httpClient),
			// The SDK retries transient errors by default; inference
			// failures here are fatal, so turn that off.
			openaiopt.WithMaxRetries(0),
		}
		if opts.APIKey != "" {
			clientOpts = append(clientOpts, openaiopt.WithAPIKey(opts.APIKey))
		}
		client := openai.NewClient(clientOpts...)
		return openaiexecutor.New[Request](client, opts.UserPrompt,
			openaiexecutor.WithModel[Request](opts.Model),
			openaiexecutor.WithTemperature[Request](opts.Temperature),
			openaiexecutor.WithMaxTokens[Request](opts.MaxTokens),
			openaiexecutor.WithSystemInstructions[Request](opts.SystemInstructions),
		)
	}
}
