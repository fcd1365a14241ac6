// Package render writes unified agent events to a terminal, with lipgloss
// styling when color is enabled.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentwire/agentwire/internal/core"
)

// Color palette
var (
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorInfo    = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#9CA3AF") // Muted gray
)

var (
	sessionStyle = lipgloss.NewStyle().Foreground(colorMuted)
	toolStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	stderrStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	tokensStyle  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	killedStyle  = lipgloss.NewStyle().Foreground(colorWarning)
)

// Renderer formats events for one writer.
type Renderer struct {
	out   io.Writer
	color bool
	quiet bool
}

// New creates a renderer. With color false all styling is dropped; with quiet
// true only assistant text and failures are written.
func New(out io.Writer, color, quiet bool) *Renderer {
	return &Renderer{out: out, color: color, quiet: quiet}
}

// Event writes one event. text.delta is written raw so streamed chunks join
// into continuous prose; everything else gets its own line.
func (r *Renderer) Event(ev core.AgentEvent) {
	switch ev.Kind {
	case core.EventTextDelta:
		fmt.Fprint(r.out, ev.Text)

	case core.EventToolUse:
		if r.quiet || ev.Tool == nil {
			return
		}
		display := ev.Tool.DisplayText
		if display == "" {
			display = ev.Tool.Name
		}
		r.line(toolStyle, "⚙ "+display)

	case core.EventSessionStarted:
		if r.quiet {
			return
		}
		r.line(sessionStyle, "session "+ev.SessionID)

	case core.EventTurnStarted:
		if r.quiet {
			return
		}
		r.line(sessionStyle, "turn started")

	case core.EventStderr:
		if r.quiet {
			return
		}
		r.line(stderrStyle, ev.Text)

	case core.EventError:
		r.line(errorStyle, "error: "+ev.Message)

	case core.EventOutOfTokens:
		r.line(tokensStyle, ev.Message)

	case core.EventTurnComplete:
		if r.quiet {
			return
		}
		switch ev.Reason {
		case core.ReasonSuccess:
			r.line(successStyle, "✓ turn complete")
		case core.ReasonKilled:
			r.line(killedStyle, "✗ turn killed")
		default:
			r.line(errorStyle, "✗ turn failed ("+string(ev.Reason)+")")
		}
	}
}

func (r *Renderer) line(style lipgloss.Style, text string) {
	if r.color {
		text = style.Render(text)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(r.out, text)
}
