/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghpr

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// Placeholders used when the hosting API returns empty fields, matching
// what the prompt template expects.
const (
	noDescription = "No description provided"
	noPatch       = "No patch available"
)

// PullRequestContext is everything the review prompt needs about one
// pull request. It is fetched once per invocation and never cached.
type PullRequestContext struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int    `json:"number"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	State       string `json:"state"`
	BaseBranch  string `json:"base_branch"`
	HeadBranch  string `json:"head_branch"`
	HeadSHA     string `json:"head_sha"`

	Files []ChangedFile `json:"changed_files"`
}

// ChangedFile is one file of the pull request diff.
type ChangedFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	// Patch is the unified diff for this file, or the noPatch placeholder
	// for binary and oversized files where the API omits it.
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Hunks     int    `json:"hunks"`
}

// ChangedFilenames returns just the file names, for compact prompt context.
func (c *PullRequestContext) ChangedFilenames() []string {
	names := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		names = append(names, f.Filename)
	}
	return names
}

// FetchContext retrieves the pull request metadata and its full changed
// file list. Pagination is walked sequentially; there is no parallel
// fetching and no caching across invocations.
func (c *Client) FetchContext(ctx context.Context, owner, repo string, number int) (*PullRequestContext, error) {
	log := clog.FromContext(ctx)

	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching PR %s/%s#%d: %w", owner, repo, number, err)
	}

	prctx := &PullRequestContext{
		Owner:       owner,
		Repo:        repo,
		Number:      number,
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Author:      pr.GetUser().GetLogin(),
		State:       pr.GetState(),
		BaseBranch:  pr.GetBase().GetRef(),
		HeadBranch:  pr.GetHead().GetRef(),
		HeadSHA:     pr.GetHead().GetSHA(),
	}
	if prctx.Description == "" {
		prctx.Description = noDescription
	}

	opt := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opt)
		if err != nil {
			return nil, fmt.Errorf("listing files for PR %s/%s#%d: %w", owner, repo, number, err)
		}
		for _, f := range files {
			prctx.Files = append(prctx.Files, newChangedFile(ctx, f))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	log.With("pr", fmt.Sprintf("%s/%s#%d", owner, repo, number)).
		With("files", len(prctx.Files)).
		With("head_sha", prctx.HeadSHA).
		Info("Fetched pull request context")

	return prctx, nil
}

func newChangedFile(ctx context.Context, f *github.CommitFile) ChangedFile {
	cf := ChangedFile{
		Filename:  f.GetFilename(),
		Status:    f.GetStatus(),
		Patch:     f.GetPatch(),
		Additions: f.GetAdditions(),
		Deletions: f.GetDeletions(),
	}
	if cf.Patch == "" {
		cf.Patch = noPatch
		return cf
	}

	stats, err := patchStats(cf.Filename, cf.Patch)
	if err != nil {
		// The API counts stand on their own; the parsed stats only add
		// hunk counts.
		clog.FromContext(ctx).With("file", cf.Filename).
			With("error", err.Error()).
			Warn("Failed to parse file patch")
		return cf
	}

	cf.Hunks = stats.Hunks
	if cf.Additions == 0 && cf.Deletions == 0 {
		cf.Additions = stats.Additions
		cf.Deletions = stats.Deletions
	}
	return cf
}
