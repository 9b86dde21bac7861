// Package stats contains scoring math and the read-side projections over
// stored results.
package stats

import (
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// CharsPerWord is the standard word length used for WPM.
const CharsPerWord = 5

// Round10 rounds x to one decimal place, halves rounding up.
func Round10(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// WPM computes words per minute for a prompt of textLen characters typed
// over elapsed. Non-positive durations yield 0.
func WPM(textLen int, elapsed time.Duration) float64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 || textLen <= 0 {
		return 0
	}
	minutes := float64(ms) / 60000.0
	return Round10((float64(textLen) / CharsPerWord) / minutes)
}

// Accuracy returns the percentage of correct characters. An empty text is
// 100% accurate. Any error keeps the value below 100 even when rounding
// would reach it.
func Accuracy(textLen, errors int) float64 {
	if textLen <= 0 {
		return 100
	}
	if errors <= 0 {
		return 100
	}
	acc := Round10(math.Max(0, 100-float64(errors)/float64(textLen)*100))
	if acc >= 100 {
		return 99.9
	}
	return acc
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
