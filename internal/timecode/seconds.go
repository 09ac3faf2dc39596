package timecode

import (
	"math"
	"strconv"
)

// FormatSeconds renders a seconds value for use in tool arguments and filter
// expressions: rounded to millisecond precision with no trailing zeros.
func FormatSeconds(v float64) string {
	rounded := math.Round(v*1000) / 1000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
