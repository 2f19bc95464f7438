package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/pkg/anim"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// animateInterval is the terminal refresh interval. The clock still
// advances in whole 60 Hz frames.
const animateInterval = 100 * time.Millisecond

// animateCommand creates the animate command.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		kind   string
		format string
		speed  float64
		frames int
	)

	cmd := &cobra.Command{
		Use:   "animate [document]",
		Short: "Preview an animated generator live in the terminal",
		Long: `Preview an animated generator (mesh-gradient, svg-wave) in the terminal.

The current frame's CSS (or SVG) is redrawn as the animation clock runs.
Keys: space pause, r reset, +/- speed, q quit.

The preview runs even when the document's animate toggle is off.
With --frames the first n frames are printed to stdout instead.`,
		Example: `  blocks animate --kind mesh-gradient
  blocks animate wave.toml --format svg
  blocks animate --kind svg-wave --frames 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			g, err := loadGenerator(input, kind)
			if err != nil {
				return err
			}
			a, ok := g.(generator.Animator)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "%s is not animated", g.Kind())
			}
			a.SetAnimated(true)
			if format != registry.FormatCSS && format != registry.FormatSVG {
				return errors.New(errors.ErrCodeInvalidFormat, "animate supports css or svg, got %q", format)
			}
			if !registry.Supports(g, format) {
				return errors.New(errors.ErrCodeUnsupported, "%s does not support %s", g.Kind(), format)
			}
			if speed <= 0 {
				speed = a.AnimationSpeed()
			}

			m := newAnimateModel(cmd.Context(), a, g.Kind(), format, speed)
			if frames > 0 {
				return m.printFrames(c.stdout(), frames)
			}
			return runAnimateTUI(cmd.Context(), m)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "generator kind when no document is given")
	cmd.Flags().StringVarP(&format, "format", "f", registry.FormatCSS, "frame format: css or svg")
	cmd.Flags().Float64Var(&speed, "speed", 0, "clock speed (default: the generator's speed)")
	cmd.Flags().IntVar(&frames, "frames", 0, "print the first n frames and exit")

	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)

	return cmd
}

func runAnimateTUI(ctx context.Context, m animateModel) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("animate: %w", err)
	}
	return nil
}

// =============================================================================
// animateModel - live animation preview
// =============================================================================

var (
	animTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	animFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	animHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// frameMsg is delivered on every animation tick.
type frameMsg time.Time

// animateModel is the bubbletea model for the animate command.
type animateModel struct {
	ctx    context.Context
	gen    generator.Animator
	kind   string
	format string
	clock  *anim.Clock
	paused bool
	last   time.Time
	frame  string
	err    error
	width  int
}

func newAnimateModel(ctx context.Context, a generator.Animator, kind, format string, speed float64) animateModel {
	m := animateModel{
		ctx:    ctx,
		gen:    a,
		kind:   kind,
		format: format,
		clock:  anim.NewClock(speed),
		width:  80,
	}
	m.render()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(animateInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m animateModel) Init() tea.Cmd {
	return tick()
}

func (m animateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.clock.Reset()
			m.render()
		case "+", "=":
			m.clock.Speed = min(m.clock.Speed*1.5, 1000)
		case "-", "_":
			m.clock.Speed = max(m.clock.Speed/1.5, 1)
		}

	case frameMsg:
		now := time.Time(msg)
		if !m.paused && !m.last.IsZero() {
			m.clock.Advance(now.Sub(m.last))
			m.render()
		}
		m.last = now
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m animateModel) View() string {
	var b strings.Builder

	state := "playing"
	if m.paused {
		state = "paused"
	}
	b.WriteString(animTitleStyle.Render(m.kind))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  t=%.2f  speed=%.0f  %s", m.clock.Time, m.clock.Speed, state)))
	b.WriteString("\n\n")

	body := m.frame
	if m.err != nil {
		body = styleIconError.Render(m.err.Error())
	}
	b.WriteString(animFrameStyle.Width(max(m.width-4, 20)).Render(body))
	b.WriteString("\n")
	b.WriteString(animHelpStyle.Render("space pause · r reset · +/- speed · q quit"))
	b.WriteString("\n")
	return b.String()
}

// render evaluates the frame at the clock's current time.
func (m *animateModel) render() {
	data, err := pipeline.Render(m.ctx, m.gen.Frame(m.clock.Time), m.format, nil)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.frame = strings.TrimRight(string(data), "\n")
}

// printFrames steps the clock n times and writes each frame to w.
func (m animateModel) printFrames(w io.Writer, n int) error {
	for i := 0; i < n; i++ {
		t := m.clock.Step()
		m.render()
		if m.err != nil {
			return m.err
		}
		if m.format == registry.FormatCSS {
			fmt.Fprintf(w, "/* frame %d t=%.3f */\n", i+1, t)
		} else {
			fmt.Fprintf(w, "<!-- frame %d t=%.3f -->\n", i+1, t)
		}
		fmt.Fprintln(w, m.frame)
	}
	return nil
}
