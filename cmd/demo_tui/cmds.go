package demo_tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
)

// Message types
type DeferredMsg struct{ Deferred sequencer.Deferred }
type FrameMsg time.Time
type TickMsg time.Time

// schedule delivers d back to the model once its delay has passed. A tick
// cannot be withdrawn; a superseded one is dropped when the sequencer fires it.
func schedule(d sequencer.Deferred) tea.Cmd {
	return tea.Tick(d.Delay, func(time.Time) tea.Msg {
		return DeferredMsg{Deferred: d}
	})
}

// frameTick drives the viewport redraw.
func frameTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// blink returns a command that sends a tick message every 500ms for cursor blinking
func blink() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
