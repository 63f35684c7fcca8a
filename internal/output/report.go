package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/commitprobe/internal/detect"
	"github.com/blackwell-systems/commitprobe/internal/scoring"
)

// ReportOptions controls human report rendering.
type ReportOptions struct {
	// Width is the rule and banner width.
	Width int

	// Samples caps the flagged commit messages shown.
	Samples int

	// SuspiciousLPM marks fastest intervals at or above this rate.
	SuspiciousLPM float64
}

const disclaimer = `This is a heuristic analysis and NOT definitive proof.
Fast coding can also indicate copy-paste, boilerplate generators,
IDE scaffolding, or simply an experienced developer.`

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderReport writes the human-readable report for r.
func RenderReport(w io.Writer, r *detect.Report, opts ReportOptions) error {
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Samples < 0 {
		opts.Samples = 0
	}

	var b strings.Builder
	banner := strings.Repeat("=", opts.Width)

	fmt.Fprintf(&b, "\n%s\n", StyleMuted.Render(banner))
	fmt.Fprintf(&b, "  %s\n", StyleHeader.Render("commitprobe report"))
	fmt.Fprintf(&b, "  Repository: %s\n", StyleBold.Render(r.Repository))
	if r.Source != "" {
		fmt.Fprintf(&b, "  Source:     %s\n", r.Source)
	}
	fmt.Fprintf(&b, "%s\n", StyleMuted.Render(banner))

	writeOverview(&b, r)
	writeVelocity(&b, r, opts)
	writeActivity(&b, r)
	writeContent(&b, r, opts)
	writeSignals(&b, r.Result)
	writeVerdict(&b, r.Result, opts.Width)

	_, err := io.WriteString(w, b.String())
	return err
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "   %s %s\n", StyleLabel.Render(label), value)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func writeOverview(b *strings.Builder, r *detect.Report) {
	fmt.Fprintln(b, Section("Overview", 0))
	line(b, "Commits analyzed", fmt.Sprint(r.Commits))
	line(b, "Time span", fmt.Sprintf("%d days (%s to %s)", r.SpanDays,
		r.First.Format("2006-01-02"), r.Last.Format("2006-01-02")))
	if r.CreatedAt != nil {
		line(b, "Repository created", r.CreatedAt.Format("2006-01-02"))
	}
	authors := fmt.Sprint(r.Authors.Distinct)
	if r.Authors.Bots > 0 {
		authors += StyleMuted.Render(fmt.Sprintf(" (+%d bots)", r.Authors.Bots))
	}
	line(b, "Authors", authors)
	for _, a := range r.Authors.Top {
		name := a.Author
		if a.Bot {
			name = StyleMuted.Render(name + " (bot)")
		}
		fmt.Fprintf(b, "     • %s: %d commits\n", name, a.Commits)
	}
	if r.Generated.GeneratedLines > 0 {
		line(b, "Generated/vendored lines", fmt.Sprintf("%d of %d (%s)",
			r.Generated.GeneratedLines, r.Generated.AuthoredLines+r.Generated.GeneratedLines, pct(r.Generated.Share)))
	}
}

func writeVelocity(b *strings.Builder, r *detect.Report, opts ReportOptions) {
	v := r.Velocity
	fmt.Fprintln(b, Section("Velocity (lines/min between commits)", 0))
	if v.Intervals == 0 {
		fmt.Fprintf(b, "   %s\n", StyleMuted.Render("No measurable intervals"))
		return
	}
	line(b, "Median", fmt.Sprintf("%.2f  (≈ %.0f lines/hr)", v.Median, v.Median*60))
	line(b, "Mean", fmt.Sprintf("%.2f", v.Mean))
	line(b, "Max", fmt.Sprintf("%.2f", v.Max))
	line(b, "Above suspicious rate", fmt.Sprintf("%d/%d", v.AboveSuspicious, v.Intervals))

	if len(v.Fastest) == 0 {
		return
	}
	fmt.Fprintf(b, "\n   %s\n", StyleBold.Render("Fastest intervals"))
	t := NewTable("From", "To", "Author", "Lines", "Minutes", "l/min")
	for _, iv := range v.Fastest {
		rate := fmt.Sprintf("%.2f", iv.LinesPerMinute)
		if opts.SuspiciousLPM > 0 && iv.LinesPerMinute >= opts.SuspiciousLPM {
			rate = StyleMachine.Render(rate + " !")
		}
		t.AddRow(shortSHA(iv.FromSHA), shortSHA(iv.ToSHA), iv.Author,
			fmt.Sprint(iv.LinesChanged), fmt.Sprintf("%.1f", iv.GapMinutes), rate)
	}
	indent(b, t.Render())
}

func writeActivity(b *strings.Builder, r *detect.Report) {
	fmt.Fprintln(b, Section("Activity", 0))
	line(b, "Coding sessions", fmt.Sprintf("%d (%d with 2+ commits, gap > %.0f min)",
		r.Sessions.Total, r.Sessions.MultiCommit, r.Sessions.GapMinutes))
	if r.Productivity.Rated > 0 {
		line(b, "Session productivity", fmt.Sprintf("median %.2f l/min, trimmed mean %.2f (%d rated)",
			r.Productivity.Median, r.Productivity.TrimmedMean, r.Productivity.Rated))
	}
	if r.Bursts.Total > 0 {
		line(b, "Bursts", fmt.Sprintf("%d rapid, %d sustained", r.Bursts.Rapid, r.Bursts.Sustained))
	}
	if r.TimeOfDay.Commits > 0 {
		line(b, "Off-hours commits", fmt.Sprintf("%d/%d (%s)",
			r.TimeOfDay.OffHours, r.TimeOfDay.Commits, pct(r.TimeOfDay.OffHoursShare)))
		fmt.Fprintf(b, "   %s %s\n", StyleLabel.Render("Hour of day"), StyleMuted.Render(sparkline(r.TimeOfDay.Histogram[:])))
	}
	if s := r.Scale; s.Sufficient {
		origin := "first commit"
		if s.StartFromCreation {
			origin = "repository creation"
		}
		line(b, "Project scale", fmt.Sprintf("%d lines over %d calendar days since %s", s.TotalLines, s.CalendarDays, origin))
		line(b, "", fmt.Sprintf("%.0f lines/active day (%d active), %.0f lines/calendar day",
			s.LinesPerActiveDay, s.ActiveDays, s.LinesPerCalendarDay))
	}
}

func writeContent(b *strings.Builder, r *detect.Report, opts ReportOptions) {
	fmt.Fprintln(b, Section("Content", 0))
	m := r.Messages
	line(b, "LLM-style messages", fmt.Sprintf("%d/%d (%s)", m.Hits, m.Total, pct(m.Ratio)))
	for i, s := range m.Samples {
		if i >= opts.Samples {
			break
		}
		fmt.Fprintf(b, "     • %q\n", s)
	}
	if u := r.Uniformity; u.Sufficient {
		line(b, "Commit size", fmt.Sprintf("mean %.0f lines, CV %.2f over %d commits", u.Mean, u.CV, u.Commits))
	}
	if c := r.Comments; c.Total() > 0 {
		line(b, "Comment density", fmt.Sprintf("%s of %d added lines", pct(c.Ratio), c.Total()))
	}
	if e := r.Entropy; e.Qualifying > 0 {
		line(b, "Diff entropy", fmt.Sprintf("median %.2f bits/char over %d commits", e.Median, e.Qualifying))
	}
}

func writeSignals(b *strings.Builder, res scoring.ScoreResult) {
	fmt.Fprintln(b, Section("Signals", 0))
	t := NewTable("Signal", "Points")
	for _, s := range res.Signals {
		pts := fmt.Sprintf("%+.1f", s.Points)
		switch {
		case s.Points > 0:
			pts = StyleMachine.Render(pts)
		case s.Points < 0:
			pts = StyleHuman.Render(pts)
		default:
			pts = StyleMuted.Render(pts)
		}
		t.AddRow(s.Name, pts)
	}
	indent(b, t.Render())
}

func writeVerdict(b *strings.Builder, res scoring.ScoreResult, width int) {
	rule := StyleMuted.Render(strings.Repeat("─", width))
	fmt.Fprintf(b, "\n%s\n", rule)
	fmt.Fprintf(b, "  LLM likelihood score: %s\n", ScoreBar(res.Score, 20))
	verdict := res.Verdict.Label()
	if res.Verdict.Machine() {
		verdict = StyleMachine.Render(verdict)
	} else {
		verdict = StyleHuman.Render(verdict)
	}
	fmt.Fprintf(b, "  %s\n", verdict)
	fmt.Fprintf(b, "%s\n", rule)

	if len(res.Reasons) > 0 {
		fmt.Fprintf(b, "\n  %s\n", StyleBold.Render("Reasoning"))
		for _, r := range res.Reasons {
			fmt.Fprintf(b, "   • %s\n", r)
		}
	}

	fmt.Fprintf(b, "\n  %s\n", StyleWarning.Render("Disclaimer"))
	for _, l := range strings.Split(disclaimer, "\n") {
		fmt.Fprintf(b, "   %s\n", StyleMuted.Render(l))
	}
	fmt.Fprintln(b)
}

func indent(b *strings.Builder, block string) {
	for _, l := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		fmt.Fprintf(b, "   %s\n", l)
	}
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline draws counts as a one-line bar chart.
func sparkline(counts []int) string {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	out := make([]rune, len(counts))
	for i, c := range counts {
		switch {
		case c == 0:
			out[i] = ' '
		case peak == 0:
			out[i] = sparkRunes[0]
		default:
			out[i] = sparkRunes[(c*(len(sparkRunes)-1))/peak]
		}
	}
	return string(out)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
