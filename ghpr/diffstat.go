/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghpr

import (
	"fmt"

	"github.com/waigani/diffparser"
)

// PatchStats summarizes one file's unified diff.
type PatchStats struct {
	Hunks     int
	Additions int
	Deletions int
}

// patchStats parses the per-file patch returned by the Files API. Those
// patches carry only hunk headers, so a synthetic file header is prepended
// to make them a well-formed unified diff.
func patchStats(filename, patch string) (PatchStats, error) {
	unified := fmt.Sprintf("--- a/%s\n+++ b/%s\n%s", filename, filename, patch)

	diff, err := diffparser.Parse(unified)
	if err != nil {
		return PatchStats{}, fmt.Errorf("parsing patch for %s: %w", filename, err)
	}
	if len(diff.Files) == 0 {
		return PatchStats{}, fmt.Errorf("patch for %s contained no file entries", filename)
	}

	var stats PatchStats
	for _, file := range diff.Files {
		stats.Hunks += len(file.Hunks)
		for _, hunk := range file.Hunks {
			for _, line := range hunk.WholeRange.Lines {
				switch line.Mode {
				case diffparser.ADDED:
					stats.Additions++
				case diffparser.REMOVED:
					stats.Deletions++
				}
			}
		}
	}
	return stats, nil
}
