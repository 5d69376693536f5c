package report

import "strings"

// sparkline block characters from lowest to highest
var sparkBlocks = []rune{
	'\u2581', // ▁
	'\u2582', // ▂
	'\u2583', // ▃
	'\u2584', // ▄
	'\u2585', // ▅
	'\u2586', // ▆
	'\u2587', // ▇
	'\u2588', // █
}

// renderSparkline maps utilization fractions onto the absolute [0, 1]
// scale, so a flat 5% load renders low instead of filling the range.
func renderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v * float64(len(sparkBlocks)))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}
