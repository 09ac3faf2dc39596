package manifest

import "fmt"

// ExtensionPolicy selects how a short source is padded out to its span.
type ExtensionPolicy uint8

const (
	// ExtendRepeatLast freezes the final frame for the missing duration.
	ExtendRepeatLast ExtensionPolicy = iota
	// ExtendRepeatFirst freezes the first frame for the missing duration.
	ExtendRepeatFirst
)

// ParseExtensionPolicy maps a manifest value onto the closed policy set.
// The empty string selects the default (repeat_last); anything else
// unrecognized is a configuration error, caught at manifest load.
func ParseExtensionPolicy(value string) (ExtensionPolicy, error) {
	switch value {
	case "", "repeat_last":
		return ExtendRepeatLast, nil
	case "repeat_first":
		return ExtendRepeatFirst, nil
	default:
		return 0, fmt.Errorf("unknown extension policy %q (want repeat_first or repeat_last)", value)
	}
}

func (p ExtensionPolicy) String() string {
	if p == ExtendRepeatFirst {
		return "repeat_first"
	}
	return "repeat_last"
}

// ShrinkPolicy selects which end of a long source is trimmed away.
type ShrinkPolicy uint8

const (
	// ShrinkTrimEnd drops the excess from the end of the source.
	ShrinkTrimEnd ShrinkPolicy = iota
	// ShrinkTrimStart drops the excess from the start of the source.
	ShrinkTrimStart
)

// ParseShrinkPolicy maps a manifest value onto the closed policy set. The
// empty string selects the default (trim_end).
func ParseShrinkPolicy(value string) (ShrinkPolicy, error) {
	switch value {
	case "", "trim_end":
		return ShrinkTrimEnd, nil
	case "trim_start":
		return ShrinkTrimStart, nil
	default:
		return 0, fmt.Errorf("unknown shrink policy %q (want trim_start or trim_end)", value)
	}
}

func (p ShrinkPolicy) String() string {
	if p == ShrinkTrimStart {
		return "trim_start"
	}
	return "trim_end"
}
