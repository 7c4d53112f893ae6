package domain

import (
	"strings"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// AcceptableFailureMarkers identify failures the generator reports on purpose:
// modules it refuses to handle and modules that cannot be imported at all.
var AcceptableFailureMarkers = []string{
	"Error: Found the '",
	"Error: Failed to import",
}

// Classify maps captured command output to an outcome. Timeouts are failures
// like any other and are only excused when their partial stderr carries a marker.
func Classify(output adapter.CommandOutput) m.Outcome {
	if !output.Failed() {
		return m.Passed
	}

	for _, marker := range AcceptableFailureMarkers {
		if strings.Contains(output.Stderr, marker) {
			return m.Expected
		}
	}

	return m.Unexpected
}
