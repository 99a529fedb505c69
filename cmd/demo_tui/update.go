package demo_tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.Help.Height = msg.Height
		return m, nil

	case DeferredMsg:
		run := m.Sequencer.State().Run
		next, ok := m.Sequencer.Fire(msg.Deferred)
		if !ok {
			return m, nil
		}
		if m.Sequencer.State().Run != run {
			// Auto-advanced to the next scenario.
			m.Focus = 0
			m.StatusSummary = ""
		}
		return m, schedule(next)

	case FrameMsg:
		m.Viewport.Step(m.Stage.Scene(), m.FrameInterval)
		return m, frameTick(m.FrameInterval)

	case TickMsg:
		m.CursorVisible = !m.CursorVisible
		return m, blink()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Help.ShowAll {
		if key.Matches(msg, m.KeyMap.Help) || key.Matches(msg, m.KeyMap.Quit) || msg.String() == "esc" {
			m.Help.Toggle()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.KeyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.KeyMap.Help):
		m.Help.Toggle()
		return m, nil

	case key.Matches(msg, m.KeyMap.Up):
		if m.Focus > 0 {
			m.Focus--
		}
		return m, nil

	case key.Matches(msg, m.KeyMap.Down):
		if m.Focus < len(m.Sequencer.State().Params)-1 {
			m.Focus++
		}
		return m, nil

	case key.Matches(msg, m.KeyMap.Left):
		return m.nudge(-1), nil

	case key.Matches(msg, m.KeyMap.Right):
		return m.nudge(1), nil

	case key.Matches(msg, m.KeyMap.Next):
		return m.switched(m.Sequencer.Next())

	case key.Matches(msg, m.KeyMap.Prev):
		return m.switched(m.Sequencer.Prev())

	case key.Matches(msg, m.KeyMap.Select):
		index := int(msg.Runes[0] - '1')
		d, err := m.Sequencer.Select(index)
		if err != nil {
			m.StatusSummary = theme.DefaultTheme.Warning.Render(fmt.Sprintf("No scenario %d", index+1))
			return m, nil
		}
		return m.switched(d)
	}
	return m, nil
}

// switched resets per-run UI state after a manual scenario change.
func (m Model) switched(first sequencer.Deferred) (tea.Model, tea.Cmd) {
	m.Focus = 0
	m.StatusSummary = ""
	return m, schedule(first)
}

func (m Model) nudge(steps int) Model {
	st := m.Sequencer.State()
	if st.Phase != sequencer.ParametersInteractive || len(st.Params) == 0 {
		m.StatusSummary = theme.DefaultTheme.Muted.Render("Parameters unlock once the model is shown")
		return m
	}
	if m.Focus >= len(st.Params) {
		m.Focus = len(st.Params) - 1
	}
	name := st.Params[m.Focus].Name

	err := m.Sequencer.Nudge(name, steps)
	switch {
	case err == nil:
		m.StatusSummary = ""
	case errors.Is(err, sequencer.ErrInvalidValue):
		m.StatusSummary = theme.DefaultTheme.Warning.Render(err.Error())
	default:
		m.StatusSummary = theme.DefaultTheme.Error.Render(err.Error())
	}
	return m
}
