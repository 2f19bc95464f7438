package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/blocks/pkg/pipeline"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleDim renders muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders values such as paths and kinds.
	StyleValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleKey         = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
)

// statusOut receives status lines. Artifacts go to CLI.stdout instead.
var statusOut io.Writer = os.Stdout

func status(icon, msg string) {
	fmt.Fprintln(statusOut, icon+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess.Render("✓"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError.Render("✗"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleIconWarning.Render("!"), styleIconWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(StyleDim.Render("›"), fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact path.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats summarizes a pipeline run on one line:
//
//	3 formats · 4.1 kB · 12ms · cached
func printStats(res *pipeline.Result) {
	var size int
	for _, data := range res.Artifacts {
		size += len(data)
	}
	state := StyleDim.Render("fresh")
	if res.CacheHit {
		state = styleIconSuccess.Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d formats", len(res.Artifacts))),
		StyleDim.Render(humanize.Bytes(uint64(size))),
		StyleDim.Render(res.Stats.RenderTime.Round(time.Millisecond).String()),
		state,
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
