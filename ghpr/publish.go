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

// PublishComment posts one issue comment on the pull request. There is no
// deduplication: publishing the same review twice produces two comments.
func (c *Client) PublishComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}

	created, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return fmt.Errorf("creating comment on %s/%s#%d: %w", owner, repo, number, err)
	}

	clog.FromContext(ctx).
		With("pr", fmt.Sprintf("%s/%s#%d", owner, repo, number)).
		With("comment_id", created.GetID()).
		Info("Published review comment")
	return nil
}
