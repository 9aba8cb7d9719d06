/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"chainguard.dev/prreviewer/ghpr"
)

type fakeHost struct {
	prctx      *ghpr.PullRequestContext
	fetchErr   error
	publishErr error

	published []string
}

func (f *fakeHost) FetchContext(_ context.Context, owner, repo string, number int) (*ghpr.PullRequestContext, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.prctx, nil
}

func (f *fakeHost) PublishComment(_ context.Context, owner, repo string, number int, body string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, body)
	return nil
}

type fakeExecutor struct {
	response string
	err      error

	calls int
	last  *Request
}

func (f *fakeExecutor) Execute(_ context.Context, request *Request) (string, error) {
	f.calls++
	f.last = request
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func samplePR() *ghpr.PullRequestContext {
	return &ghpr.PullRequestContext{
		Owner:       "octo-org",
		Repo:        "widgets",
		Number:      42,
		Title:       "feat: add widget support",
		Description: "Adds widgets.",
		Author:      "octocat",
		State:       "open",
		Files: []ghpr.ChangedFile{
			{Filename: "main.go", Status: "modified", Patch: "@@ -1 +1 @@", Additions: 1, Deletions: 1},
		},
	}
}

const goodResponse = "```json\n" + `{
  "overall_assessment": "Solid change",
  "strengths": ["clear naming"],
  "concerns": ["missing tests"],
  "recommendations": ["add unit tests"],
  "test_plan": ["run the widget suite"],
  "code_quality_score": 8
}` + "\n```"

func TestRunPublishesExactlyOneComment(t *testing.T) {
	host := &fakeHost{prctx: samplePR()}
	exec := &fakeExecutor{response: goodResponse}
	var stdout bytes.Buffer

	p := newPipeline(host, exec, "octo-org", "widgets", 42, &stdout)
	if err := p.Run(t.Context()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(host.published) != 1 {
		t.Fatalf("expected exactly one published comment, got %d", len(host.published))
	}
	body := host.published[0]
	for _, want := range []string{
		"## PR Review for #42",
		"Solid change",
		"- clear naming",
		"- missing tests",
		"- add unit tests",
		"- run the widget suite",
		"Code Quality Score: 8/10",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("comment missing %q:\n%s", want, body)
		}
	}

	// Stdout carries the parsed review as pretty JSON.
	var printed Review
	if err := json.Unmarshal(stdout.Bytes(), &printed); err != nil {
		t.Fatalf("stdout is not valid JSON: %v\n%s", err, stdout.String())
	}
	if printed.CodeQualityScore != 8 {
		t.Errorf("unexpected printed score: %d", printed.CodeQualityScore)
	}

	// The executor saw the fetched context.
	if exec.calls != 1 {
		t.Errorf("expected one inference call, got %d", exec.calls)
	}
	if exec.last == nil || exec.last.PR.Title != "feat: add widget support" {
		t.Errorf("executor did not receive the PR context: %+v", exec.last)
	}
}

func TestRunFetchFailureSkipsInference(t *testing.T) {
	host := &fakeHost{fetchErr: errors.New("404 Not Found")}
	exec := &fakeExecutor{response: goodResponse}

	p := newPipeline(host, exec, "octo-org", "widgets", 404, &bytes.Buffer{})
	err := p.Run(t.Context())
	if err == nil {
		t.Fatal("expected error")
	}

	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if exec.calls != 0 {
		t.Errorf("inference must not run after fetch failure, got %d calls", exec.calls)
	}
	if len(host.published) != 0 {
		t.Errorf("no comment must be published, got %d", len(host.published))
	}
}

func TestRunInferenceFailureSkipsPublish(t *testing.T) {
	host := &fakeHost{prctx: samplePR()}
	exec := &fakeExecutor{err: errors.New("500 Internal Server Error")}

	p := newPipeline(host, exec, "octo-org", "widgets", 42, &bytes.Buffer{})
	err := p.Run(t.Context())
	if err == nil {
		t.Fatal("expected error")
	}

	var ierr *InferenceError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InferenceError, got %T: %v", err, err)
	}
	if len(host.published) != 0 {
		t.Errorf("no comment must be published after inference failure, got %d", len(host.published))
	}
}

func TestRunPublishFailure(t *testing.T) {
	host := &fakeHost{prctx: samplePR(), publishErr: errors.New("403 Forbidden")}
	exec := &fakeExecutor{response: goodResponse}
	var stdout bytes.Buffer

	p := newPipeline(host, exec, "octo-org", "widgets", 42, &stdout)
	err := p.Run(t.Context())
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *PublishError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PublishError, got %T: %v", err, err)
	}
	// The review still reached stdout before the failed publish.
	if stdout.Len() == 0 {
		t.Error("expected review on stdout despite publish failure")
	}
}

func TestRunUnparseableResponseStillPublishes(t *testing.T) {
	host := &fakeHost{prctx: samplePR()}
	exec := &fakeExecutor{response: "I could not produce JSON, sorry."}

	p := newPipeline(host, exec, "octo-org", "widgets", 42, &bytes.Buffer{})
	if err := p.Run(t.Context()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(host.published) != 1 {
		t.Fatalf("expected one published comment, got %d", len(host.published))
	}
	body := host.published[0]
	if !strings.Contains(body, "Unable to parse review details") {
		t.Errorf("comment missing fallback assessment:\n%s", body)
	}
	if !strings.Contains(body, "I could not produce JSON, sorry.") {
		t.Errorf("comment missing raw review:\n%s", body)
	}
}

func TestRunRerunDuplicatesComment(t *testing.T) {
	host := &fakeHost{prctx: samplePR()}
	exec := &fakeExecutor{response: goodResponse}

	p := newPipeline(host, exec, "octo-org", "widgets", 42, &bytes.Buffer{})
	for range 2 {
		if err := p.Run(t.Context()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	// No dedup: the same request publishes twice.
	if len(host.published) != 2 {
		t.Errorf("expected two comments after two runs, got %d", len(host.published))
	}
}
