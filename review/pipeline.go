/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package review runs one end-to-end review cycle for one pull request:
// fetch, prompt-build, infer, publish. The pipeline is strictly
// sequential, stateless across invocations, and never retries; any stage
// failure is returned to the caller as a typed error and the process
// exits non-zero.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"chainguard.dev/prreviewer/config"
	"chainguard.dev/prreviewer/executor"
	"chainguard.dev/prreviewer/ghpr"
	"github.com/chainguard-dev/clog"
)

// Host is the subset of the hosting API the pipeline needs. ghpr.Client
// implements it.
type Host interface {
	FetchContext(ctx context.Context, owner, repo string, number int) (*ghpr.PullRequestContext, error)
	PublishComment(ctx context.Context, owner, repo string, number int, body string) error
}

// Pipeline performs one review cycle, end to end, then its owner exits.
type Pipeline struct {
	host   Host
	exec   executor.Interface[*Request]
	owner  string
	repo   string
	number int
	stdout io.Writer
}

// NewPipeline wires a pipeline from the process configuration.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	system, err := boundSystemInstructions()
	if err != nil {
		return nil, fmt.Errorf("binding system instructions: %w", err)
	}

	exec, err := executor.New[*Request](ctx, executor.Options{
		Endpoint:           cfg.LLMEndpoint,
		APIKey:             cfg.APIKey,
		Model:              cfg.Model,
		Temperature:        cfg.Temperature,
		MaxTokens:          cfg.MaxTokens,
		Timeout:            cfg.RequestTimeout,
		SystemInstructions: system,
		UserPrompt:         userPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("creating executor: %w", err)
	}

	return &Pipeline{
		host:   ghpr.NewClient(ctx, cfg.GitHubToken, cfg.RequestTimeout),
		exec:   exec,
		owner:  cfg.Owner(),
		repo:   cfg.Repo(),
		number: cfg.PRNumber,
		stdout: os.Stdout,
	}, nil
}

// newPipeline assembles a pipeline from parts. Used by tests to inject a
// fake host and executor.
func newPipeline(host Host, exec executor.Interface[*Request], owner, repo string, number int, stdout io.Writer) *Pipeline {
	return &Pipeline{
		host:   host,
		exec:   exec,
		owner:  owner,
		repo:   repo,
		number: number,
		stdout: stdout,
	}
}

// Run executes the review cycle. At most one comment is published per
// invocation; re-running the same request produces a duplicate comment.
func (p *Pipeline) Run(ctx context.Context) error {
	log := clog.FromContext(ctx).
		With("pr", fmt.Sprintf("%s/%s#%d", p.owner, p.repo, p.number))

	// Step A: fetch.
	prctx, err := p.host.FetchContext(ctx, p.owner, p.repo, p.number)
	if err != nil {
		return &FetchError{Err: err}
	}

	// Steps B and C: the executor binds the context into the prompt and
	// performs the single inference call.
	raw, err := p.exec.Execute(ctx, &Request{PR: prctx})
	if err != nil {
		return &InferenceError{Err: err}
	}

	rev := Parse(raw)
	if rev.RawReview != "" {
		log.Warn("Model response was not valid JSON, publishing raw review")
	}

	// The parsed review is printed before publishing so a publish failure
	// still leaves the review on stdout.
	pretty, err := json.MarshalIndent(rev, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling review: %w", err)
	}
	fmt.Fprintln(p.stdout, string(pretty))

	// Step D: publish.
	if err := p.host.PublishComment(ctx, p.owner, p.repo, p.number, rev.Markdown(p.number)); err != nil {
		return &PublishError{Err: err}
	}

	log.Info("Review cycle complete")
	return nil
}
