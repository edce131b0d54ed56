package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	rerr "github.com/matzehuels/reactor/pkg/errors"
	"github.com/matzehuels/reactor/pkg/reactor"
	"github.com/matzehuels/reactor/pkg/schedule"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCode = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSkipped = "-"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints an indented detail line.
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Projects
// =============================================================================

// printProjects prints a numbered list of projects, one per line.
func printProjects(w io.Writer, projects []reactor.Project) {
	width := len(fmt.Sprint(len(projects)))
	for i, p := range projects {
		num := fmt.Sprintf("%*d.", width, i+1)
		fmt.Fprintln(w, StyleNumber.Render(num)+" "+projectLabel(p))
	}
}

// projectLabel renders "group:artifact" with the version and path dimmed.
func projectLabel(p reactor.Project) string {
	label := StyleValue.Render(p.ID().String())
	d, ok := p.(*reactor.Descriptor)
	if !ok {
		return label
	}
	var extra []string
	if d.Version != "" {
		extra = append(extra, d.Version)
	}
	if d.Path != "" {
		extra = append(extra, d.Path)
	}
	if len(extra) > 0 {
		label += " " + StyleDim.Render("("+strings.Join(extra, ", ")+")")
	}
	return label
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints reactor statistics on a single line.
func printStats(w io.Writer, projects, edges, selected int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d projects", projects),
		fmt.Sprintf("%d edges", edges),
	}
	if selected != projects {
		parts = append(parts, fmt.Sprintf("%d selected", selected))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}

// =============================================================================
// Schedule Output
// =============================================================================

// printWaves prints the parallel build waves of a dry run.
func printWaves(w io.Writer, waves [][]reactor.Project) {
	for i, wave := range waves {
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Wave %d", i+1)))
		for _, p := range wave {
			fmt.Fprintln(w, "  "+StyleDim.Render(iconInfo)+" "+projectLabel(p))
		}
	}
}

// printOutcome prints the result of one module build.
func printOutcome(w io.Writer, o schedule.Outcome) {
	id := o.Project.ID().String()
	switch o.Status {
	case schedule.Succeeded:
		printSuccess(w, "%s %s", id, StyleDim.Render(o.Duration.Round(time.Millisecond).String()))
	case schedule.Failed:
		printError(w, "%s %s", id, StyleDim.Render(o.Err.Error()))
	default:
		fmt.Fprintln(w, StyleDim.Render(iconSkipped+" "+id+" (skipped)"))
	}
}

// printReport prints a one-line summary of a schedule run.
func printReport(w io.Writer, r *schedule.Report) {
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d built · %d failed · %d skipped · %s",
		r.Count(schedule.Succeeded),
		r.Count(schedule.Failed),
		r.Count(schedule.Skipped),
		r.Duration.Round(time.Millisecond))))
}

// =============================================================================
// Errors
// =============================================================================

// FormatError renders err for the terminal: the error code, if any, followed
// by the user-facing message.
func FormatError(err error) string {
	msg := rerr.UserMessage(err)
	if code := rerr.GetCode(err); code != "" {
		return styleIconError.Render(iconError) + " " + styleCode.Render(string(code)) + " " + msg
	}
	return styleIconError.Render(iconError) + " " + msg
}
