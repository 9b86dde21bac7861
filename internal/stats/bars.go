package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	minBarWidth         = 10
	barLabelWidth       = len("Mon 01-02")
	barValueWidth       = len(" 100.0")
	barSeparator        = " │ "
	barFull             = "█"
	colorReset          = "\x1b[0m"
	barColor            = "\x1b[36m"
	terminalWidthBackup = 80
)

// Metric selects a value from a daily point.
type Metric func(DailyPoint) float64

// MetricWPM selects the daily average WPM.
func MetricWPM(p DailyPoint) float64 { return p.WPM }

// MetricAccuracy selects the daily average accuracy.
func MetricAccuracy(p DailyPoint) float64 { return p.Accuracy }

// BarWidthFor computes the bar area width that fits within totalWidth.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	w := totalWidth - barLabelWidth - len([]rune(barSeparator)) - barValueWidth
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// RenderDailyBars renders one horizontal bar per day, scaled to the largest
// value in the series. A non-positive width uses the terminal width.
func RenderDailyBars(w io.Writer, title string, points []DailyPoint, metric Metric, width int, forceColor bool) error {
	if len(points) == 0 {
		return nil
	}
	if width <= 0 {
		width = BarWidthFor(terminalWidth())
	}
	if width < minBarWidth {
		width = minBarWidth
	}
	maxVal := 0.0
	for _, p := range points {
		maxVal = math.Max(maxVal, metric(p))
	}
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, p := range points {
		v := metric(p)
		n := 0
		if maxVal > 0 {
			n = int(math.Round(v / maxVal * float64(width)))
		}
		bar := strings.Repeat(barFull, n)
		if useColor && n > 0 {
			bar = barColor + bar + colorReset
		}
		pad := strings.Repeat(" ", width-n)
		if _, err := fmt.Fprintf(w, "%-*s%s%s%s %5.1f\n", barLabelWidth, p.Day.Format("Mon 01-02"), barSeparator, bar, pad, v); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return force || IsTerminal(w)
}
