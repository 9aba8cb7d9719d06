/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ghpr reads pull request context from the GitHub API and writes
// review comments back. It is the only package that talks to the hosting
// API; everything it returns is a plain value the pipeline owns.
package ghpr

import (
	"context"
	"time"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// Client wraps an authenticated GitHub API client.
type Client struct {
	gh *github.Client
}

// NewClient builds a client authenticated with a personal access token.
func NewClient(ctx context.Context, token string, timeout time.Duration) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout
	return &Client{gh: github.NewClient(tc)}
}

// NewFromGitHub wraps an existing GitHub client. Used by tests to point
// at a fake API server.
func NewFromGitHub(gh *github.Client) *Client {
	return &Client{gh: gh}
}
