/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghpr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v84/github"
)

const samplePatch = `@@ -10,4 +10,5 @@ func main() {
 	fmt.Println("one")
-	fmt.Println("two")
+	fmt.Println("2")
+	fmt.Println("three")
 }`

func testClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	gh.BaseURL = base
	return NewFromGitHub(gh)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func pullHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"number": 42,
			"title":  "feat: add widget support",
			"body":   "Adds widgets.",
			"state":  "open",
			"user":   map[string]any{"login": "octocat"},
			"base":   map[string]any{"ref": "main"},
			"head":   map[string]any{"ref": "widgets", "sha": "abc123"},
		})
	}
}

func TestFetchContext(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42", pullHandler(t))
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42/files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{
				"filename":  "main.go",
				"status":    "modified",
				"patch":     samplePatch,
				"additions": 2,
				"deletions": 1,
			},
			{
				"filename": "logo.png",
				"status":   "added",
			},
		})
	})

	c := testClient(t, mux)
	got, err := c.FetchContext(t.Context(), "octo-org", "widgets", 42)
	if err != nil {
		t.Fatalf("FetchContext failed: %v", err)
	}

	want := &PullRequestContext{
		Owner:       "octo-org",
		Repo:        "widgets",
		Number:      42,
		Title:       "feat: add widget support",
		Description: "Adds widgets.",
		Author:      "octocat",
		State:       "open",
		BaseBranch:  "main",
		HeadBranch:  "widgets",
		HeadSHA:     "abc123",
		Files: []ChangedFile{
			{
				Filename:  "main.go",
				Status:    "modified",
				Patch:     samplePatch,
				Additions: 2,
				Deletions: 1,
				Hunks:     1,
			},
			{
				Filename: "logo.png",
				Status:   "added",
				Patch:    "No patch available",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}

	wantNames := []string{"main.go", "logo.png"}
	if diff := cmp.Diff(wantNames, got.ChangedFilenames()); diff != "" {
		t.Errorf("filenames mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchContextEmptyBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"number": 42,
			"title":  "untitled",
			"state":  "open",
		})
	})
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42/files", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{})
	})

	c := testClient(t, mux)
	got, err := c.FetchContext(t.Context(), "octo-org", "widgets", 42)
	if err != nil {
		t.Fatalf("FetchContext failed: %v", err)
	}
	if got.Description != "No description provided" {
		t.Errorf("expected description placeholder, got %q", got.Description)
	}
}

func TestFetchContextPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42", pullHandler(t))
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/42/files", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			writeJSON(t, w, []map[string]any{
				{"filename": "second.go", "status": "added"},
			})
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
		writeJSON(t, w, []map[string]any{
			{"filename": "first.go", "status": "modified"},
		})
	})

	c := testClient(t, mux)
	got, err := c.FetchContext(t.Context(), "octo-org", "widgets", 42)
	if err != nil {
		t.Fatalf("FetchContext failed: %v", err)
	}
	if diff := cmp.Diff([]string{"first.go", "second.go"}, got.ChangedFilenames()); diff != "" {
		t.Errorf("paginated files mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchContextNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo-org/widgets/pulls/404", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	c := testClient(t, mux)
	if _, err := c.FetchContext(t.Context(), "octo-org", "widgets", 404); err == nil {
		t.Error("expected error for missing PR")
	}
}

func TestPublishComment(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo-org/widgets/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		var comment struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
			t.Errorf("decoding comment: %v", err)
		}
		gotBody = comment.Body
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, map[string]any{"id": 7, "body": comment.Body})
	})

	c := testClient(t, mux)
	if err := c.PublishComment(t.Context(), "octo-org", "widgets", 42, "## Review\nlooks good"); err != nil {
		t.Fatalf("PublishComment failed: %v", err)
	}
	if !strings.Contains(gotBody, "looks good") {
		t.Errorf("unexpected comment body: %q", gotBody)
	}
}

func TestPublishCommentForbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo-org/widgets/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Forbidden"}`, http.StatusForbidden)
	})

	c := testClient(t, mux)
	if err := c.PublishComment(t.Context(), "octo-org", "widgets", 42, "body"); err == nil {
		t.Error("expected error for forbidden write")
	}
}

func TestPatchStats(t *testing.T) {
	stats, err := patchStats("main.go", samplePatch)
	if err != nil {
		t.Fatalf("patchStats failed: %v", err)
	}
	want := PatchStats{Hunks: 1, Additions: 2, Deletions: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchStatsMultipleHunks(t *testing.T) {
	patch := `@@ -1,3 +1,3 @@
-old line
+new line
 context
@@ -20,2 +20,3 @@
 context
+added line`
	stats, err := patchStats("multi.go", patch)
	if err != nil {
		t.Fatalf("patchStats failed: %v", err)
	}
	want := PatchStats{Hunks: 2, Additions: 2, Deletions: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}
