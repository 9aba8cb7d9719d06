/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements a single-shot GitHub PR review agent. Each
// invocation reviews exactly one pull request: it fetches the PR context,
// sends it through one inference call, publishes the review as an issue
// comment, and exits.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/prreviewer/config"
	"chainguard.dev/prreviewer/review"
	"github.com/chainguard-dev/clog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Process(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "%v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		clog.FatalContextf(ctx, "invalid configuration: LOG_LEVEL: %v", err)
	}
	log := clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx = clog.WithLogger(ctx, log)

	clog.InfoContextf(ctx, "Reviewing %s#%d with model %s", cfg.RepoName, cfg.PRNumber, cfg.Model)

	p, err := review.NewPipeline(ctx, cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating pipeline: %v", err)
	}

	if err := p.Run(ctx); err != nil {
		var (
			ferr *review.FetchError
			ierr *review.InferenceError
			perr *review.PublishError
		)
		switch {
		case errors.As(err, &ferr):
			clog.FatalContextf(ctx, "fetch failed: %v", ferr.Err)
		case errors.As(err, &ierr):
			clog.FatalContextf(ctx, "inference failed: %v", ierr.Err)
		case errors.As(err, &perr):
			clog.FatalContextf(ctx, "publish failed: %v", perr.Err)
		default:
			clog.FatalContextf(ctx, "review failed: %v", err)
		}
	}
}
