package output

import (
	"fmt"
	"io"
	"strings"
)

// ScoreBar renders a bar for a 0-100 likelihood score. High scores are
// rendered in the machine color.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleHuman
	switch {
	case score >= 50:
		style = StyleMachine
	case score >= 30:
		style = StyleWarning
	}

	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%.1f/100", score)))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// higherIsBetter picks which direction is rendered as good news.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleHuman.Render(arrow)
	}
	return StyleMachine.Render(arrow)
}

// Section returns a styled section header with a horizontal rule.
func Section(title string, width int) string {
	if width <= 0 {
		width = 60
	}
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", width))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Progress writes a self-overwriting "label done/total" line to w. The line
// is terminated once done reaches total.
type Progress struct {
	w     io.Writer
	label string
}

// NewProgress returns a progress line writer.
func NewProgress(w io.Writer, label string) *Progress {
	return &Progress{w: w, label: label}
}

// Update redraws the line.
func (p *Progress) Update(done, total int) {
	fmt.Fprintf(p.w, "\r %s %d/%d", StyleMuted.Render(p.label), done, total)
	if done >= total {
		fmt.Fprintln(p.w)
	}
}
