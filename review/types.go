/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"chainguard.dev/prreviewer/ghpr"
	"chainguard.dev/prreviewer/promptbuilder"
	"chainguard.dev/prreviewer/result"
)

// Review is the structured response contract the model is asked to fill.
// The JSON tags double as the schema embedded in the system prompt.
type Review struct {
	// OverallAssessment is a brief overall evaluation.
	OverallAssessment string `json:"overall_assessment" jsonschema:"required"`
	// Strengths lists positive aspects of the change.
	Strengths []string `json:"strengths"`
	// Concerns lists potential issues.
	Concerns []string `json:"concerns"`
	// Recommendations lists specific improvement suggestions.
	Recommendations []string `json:"recommendations"`
	// TestPlan lists steps for manual verification and automated tests.
	TestPlan []string `json:"test_plan"`
	// CodeQualityScore is a numerical score between 1 and 10.
	CodeQualityScore int `json:"code_quality_score" jsonschema:"required"`
	// RawReview holds the unparsed model output when JSON extraction
	// failed. Empty on a clean parse.
	RawReview string `json:"raw_review,omitempty"`
}

// Request carries the fetched pull request context into the user prompt.
type Request struct {
	PR *ghpr.PullRequestContext
}

// Bind implements promptbuilder.Bindable. The whole context is bound as
// JSON so PR-supplied text cannot alter the prompt structure.
func (r *Request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindJSON("pr_context", r.PR)
}

// Parse extracts the structured review from raw model output. A response
// that does not parse as JSON degrades to the raw-review fallback rather
// than failing the run.
func Parse(raw string) Review {
	rev, err := result.Extract[Review](raw)
	if err != nil {
		return Review{
			OverallAssessment: "Unable to parse review details",
			RawReview:         raw,
		}
	}
	return rev
}
