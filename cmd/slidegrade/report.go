package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/slidegrade"
	"github.com/tsawler/slidegrade/score"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fairStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	poorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func ratioStyle(r float64) lipgloss.Style {
	switch {
	case r >= 0.9:
		return goodStyle
	case r >= 0.5:
		return fairStyle
	default:
		return poorStyle
	}
}

func formatScore(res *score.Result) string {
	return ratioStyle(res.Ratio()).Render(fmt.Sprintf("%d/%d (%.0f%%)", res.Total, res.Max, 100*res.Ratio()))
}

// renderReport writes the per-slide breakdown of one comparison.
func renderReport(w io.Writer, sample, tested string, res *score.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s vs %s", tested, sample)))
	fmt.Fprintf(w, "Score: %s\n\n", formatScore(res))

	for _, s := range res.Slides {
		fmt.Fprintf(w, "Slide %d: %d\n", s.Index+1, s.Total)
		for _, sh := range s.Shapes {
			fmt.Fprintf(w, "  %-24s type %d  fill %d  line %d  offset %d  = %d\n",
				shapeLabel(sh), sh.Type, sh.Fill, sh.Line, sh.Offset, sh.Total)
			fmt.Fprintf(w, "    fill: %s | %s\n", sh.SampleFill, sh.TestedFill)
			fmt.Fprintf(w, "    line: %s | %s\n", sh.SampleLine, sh.TestedLine)
		}
		if s.IgnoredSample > 0 || s.IgnoredTested > 0 {
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ignored shapes: %d sample, %d submission", s.IgnoredSample, s.IgnoredTested)))
		}
	}
	if res.IgnoredSample > 0 || res.IgnoredTested > 0 {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("ignored slides: %d sample, %d submission", res.IgnoredSample, res.IgnoredTested)))
	}
}

func shapeLabel(sh score.ShapeScore) string {
	name := sh.SampleName
	if name == "" {
		name = fmt.Sprintf("#%d", sh.SampleID)
	}
	if sh.TestedName != "" && sh.TestedName != sh.SampleName {
		name += " / " + sh.TestedName
	}
	return name
}

// renderBatch writes one line per submission.
func renderBatch(w io.Writer, subs []slidegrade.Submission) {
	for _, s := range subs {
		if s.Err != nil {
			fmt.Fprintf(w, "%-40s %s\n", s.Path, errStyle.Render("error: "+firstLine(s.Err.Error())))
			continue
		}
		fmt.Fprintf(w, "%-40s %s\n", s.Path, formatScore(s.Result))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
