package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks invalid or contradictory manifest input:
	// non-contiguous channels, overlapping clips, missing tracks, duration
	// invariant violations.
	ErrConfiguration = errors.New("configuration error")
	// ErrProbe marks a failure to introspect a source asset.
	ErrProbe = errors.New("probe error")
	// ErrDurationMismatch marks a source whose duration cannot be reconciled
	// with its destination span.
	ErrDurationMismatch = errors.New("duration mismatch")
	// ErrExternalTool marks a non-zero exit from an external tool invocation.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "task failure"
	}
	return strings.Join(parts, ": ")
}
