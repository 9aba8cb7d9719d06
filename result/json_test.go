/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced json block",
			input: "Here is the review:\n```json\n{\"score\": 7}\n```\nDone.",
			want:  `{"score": 7}`,
		},
		{
			name:  "bare json",
			input: `{"score": 7}`,
			want:  `{"score": 7}`,
		},
		{
			name:  "generic fence",
			input: "```\n{\"score\": 7}\n```",
			want:  `{"score": 7}`,
		},
		{
			name:  "inline json fence",
			input: "```json\n{\"score\": 7}```",
			want:  `{"score": 7}`,
		},
		{
			name:  "empty json block",
			input: "```json\n```",
			want:  "",
		},
		{
			name:  "plain text passthrough",
			input: "  no json here  ",
			want:  "no json here",
		},
		{
			name:  "first of multiple blocks wins",
			input: "```json\n{\"a\": 1}\n```\n```json\n{\"b\": 2}\n```",
			want:  `{"a": 1}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	type review struct {
		Assessment string `json:"overall_assessment"`
		Score      int    `json:"code_quality_score"`
	}

	input := "The review follows.\n```json\n{\"overall_assessment\": \"solid\", \"code_quality_score\": 8}\n```"
	got, err := Extract[review](input)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := review{Assessment: "solid", Score: 8}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractMalformed(t *testing.T) {
	if _, err := Extract[map[string]any]("this is not json at all"); err == nil {
		t.Error("expected error for non-JSON input")
	}
}
