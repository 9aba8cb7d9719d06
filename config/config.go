/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config builds the immutable review request from the process
// environment. Configuration is read exactly once at startup and passed
// explicitly into the pipeline; nothing reads the environment ad hoc.
package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultModel is used when MODEL is not set in the environment.
const DefaultModel = "granite-7b-redhat-lab"

// Config holds everything a single review invocation needs. It is
// constructed once per process and never mutated afterwards.
type Config struct {
	// LLMEndpoint is the base URL of the inference service.
	LLMEndpoint string `env:"LLM_ENDPOINT,required"`

	// GitHubToken authenticates against the hosting API.
	GitHubToken string `env:"GITHUB_TOKEN,required"`

	// RepoName is the full repository identifier, e.g. "owner/repo".
	RepoName string `env:"REPO_NAME,required"`

	// PRNumber is the pull request to review.
	PRNumber int `env:"PR_NUM,required"`

	// Model selects the inference target. Optional.
	Model string `env:"MODEL"`

	// APIKey authenticates against the inference service. Optional.
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds each outbound HTTP call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=120s"`

	// MaxTokens caps the completion length.
	MaxTokens int64 `env:"MAX_TOKENS,default=8192"`

	// Temperature for inference. Low by default to keep reviews focused.
	Temperature float64 `env:"TEMPERATURE,default=0.2"`

	// LogLevel controls structured log verbosity (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL,default=info"`

	owner string
	repo  string
}

// ConfigurationError reports a missing or malformed environment variable.
// It is always raised before any network call is attempted.
type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Variable, e.Reason)
}

// Process reads the configuration from the process environment and
// validates it.
func Process(ctx context.Context) (*Config, error) {
	return process(ctx, envconfig.OsLookuper())
}

// process is the lookuper-injectable core of Process, split out so tests
// can supply a map instead of mutating the real environment.
func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.LLMEndpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigurationError{Variable: "LLM_ENDPOINT", Reason: fmt.Sprintf("not an http(s) URL: %q", c.LLMEndpoint)}
	}

	owner, repo, ok := strings.Cut(c.RepoName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return &ConfigurationError{Variable: "REPO_NAME", Reason: fmt.Sprintf("expected owner/repo, got %q", c.RepoName)}
	}
	c.owner, c.repo = owner, repo

	if c.PRNumber <= 0 {
		return &ConfigurationError{Variable: "PR_NUM", Reason: fmt.Sprintf("must be a positive integer, got %d", c.PRNumber)}
	}

	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.RequestTimeout <= 0 {
		return &ConfigurationError{Variable: "REQUEST_TIMEOUT", Reason: "must be positive"}
	}
	if c.MaxTokens <= 0 {
		return &ConfigurationError{Variable: "MAX_TOKENS", Reason: "must be positive"}
	}
	if c.Temperature < 0.0 || c.Temperature > 1.0 {
		return &ConfigurationError{Variable: "TEMPERATURE", Reason: fmt.Sprintf("must be between 0.0 and 1.0, got %f", c.Temperature)}
	}
	return nil
}

// Owner returns the repository owner parsed from REPO_NAME.
func (c *Config) Owner() string { return c.owner }

// Repo returns the repository name parsed from REPO_NAME.
func (c *Config) Repo() string { return c.repo }
