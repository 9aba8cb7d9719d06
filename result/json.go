/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts structured JSON from model responses, which
// routinely arrive wrapped in markdown code fences or surrounding prose.
package result

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the JSON content of a model response. It prefers a
// ```json fenced block, falls back to stripping bare fences, and otherwise
// returns the trimmed input.
func ExtractJSON(responseText string) string {
	// Prefer the first ```json block on its own line.
	lines := strings.Split(responseText, "\n")
	var buf strings.Builder
	inBlock := false
	found := false

	for _, line := range lines {
		if !inBlock && line == "```json" {
			inBlock = true
			found = true
			continue
		}
		if inBlock && line == "```" {
			break
		}
		if inBlock {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(line)
		}
	}

	if found {
		// An empty ```json block yields ""; callers treat that as a
		// parse failure.
		return strings.TrimSpace(buf.String())
	}

	responseText = strings.TrimSpace(responseText)

	// Inline fences without newline separation.
	if strings.HasPrefix(responseText, "```json") && strings.HasSuffix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		return strings.TrimSpace(responseText)
	}

	// These do nothing when the fences aren't there, so always apply.
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	return strings.TrimSpace(responseText)
}

// Extract pulls the JSON content out of responseText and unmarshals it
// into T.
func Extract[T any](responseText string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(responseText)), &out); err != nil {
		return out, err
	}
	return out, nil
}
