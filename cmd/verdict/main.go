package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Scored at or above the minimum
	ExitBelowThreshold = 1 // Composite below --min-score
	ExitError          = 2 // Configuration or runtime error
)

// ThresholdError indicates that scoring succeeded but the composite fell
// below the requested minimum.
type ThresholdError struct {
	Skill     string
	Composite float64
	MinScore  float64
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("%s scored %.2f, below the minimum of %.2f", e.Skill, e.Composite, e.MinScore)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var thresholdErr *ThresholdError
		if errors.As(err, &thresholdErr) {
			os.Exit(ExitBelowThreshold)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
