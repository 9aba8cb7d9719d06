/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"fmt"
	"strings"
)

// Fallback lines for sections the model left empty.
const (
	noAssessment      = "No overall assessment provided"
	noStrengths       = "No specific strengths noted"
	noConcerns        = "No specific concerns identified"
	noRecommendations = "No specific recommendations"
	noTestPlan        = "No specific testing suggestions"
)

// Markdown renders the review as the comment body published on the pull
// request.
func (r Review) Markdown(prNumber int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## PR Review for #%d\n\n", prNumber)

	sb.WriteString("### Overall Assessment\n")
	if r.OverallAssessment != "" {
		sb.WriteString(r.OverallAssessment)
	} else {
		sb.WriteString(noAssessment)
	}
	sb.WriteString("\n\n")

	writeSection(&sb, "Strengths", r.Strengths, noStrengths)
	writeSection(&sb, "Concerns", r.Concerns, noConcerns)
	writeSection(&sb, "Recommendations", r.Recommendations, noRecommendations)
	writeSection(&sb, "Testing Suggestions", r.TestPlan, noTestPlan)

	if r.CodeQualityScore > 0 {
		fmt.Fprintf(&sb, "### Code Quality Score: %d/10\n", r.CodeQualityScore)
	} else {
		sb.WriteString("### Code Quality Score: N/A\n")
	}

	if r.RawReview != "" {
		sb.WriteString("\n### Raw Review\n\n")
		sb.WriteString("```\n")
		sb.WriteString(strings.TrimSpace(r.RawReview))
		sb.WriteString("\n```\n")
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, title string, items []string, fallback string) {
	fmt.Fprintf(sb, "### %s\n", title)
	if len(items) == 0 {
		sb.WriteString(fallback)
		sb.WriteString("\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}
