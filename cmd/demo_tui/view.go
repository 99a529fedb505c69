package demo_tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/mattsolo1/grove-forge/pkg/scene"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
)

var (
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.DefaultColors.Border).Padding(0, 1)
	activePanelStyle = panelStyle.BorderForeground(theme.DefaultColors.Orange)
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Bold(true)
)

// View renders the TUI
func (m Model) View() string {
	if m.Help.ShowAll {
		return m.Help.View()
	}

	width, height := m.size()
	st := m.Sequencer.State()

	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPromptStep(st),
		m.renderParameterStep(st),
	)

	previewWidth := width - lipgloss.Width(sidebar) - 1
	previewHeight := height - 4
	preview := m.renderPreview(st, previewWidth, previewHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", preview)

	var b strings.Builder
	b.WriteString(m.renderHeader(st))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.StatusSummary != "" {
		b.WriteString(m.StatusSummary)
		b.WriteString("  ")
	}
	b.WriteString(m.Help.View())
	return b.String()
}

// renderHeader shows the title and one indicator per scenario.
func (m Model) renderHeader(st sequencer.State) string {
	n := m.Sequencer.Catalogue().Len()
	dots := make([]string, n)
	for i := range dots {
		if i == st.Index {
			dots[i] = theme.DefaultTheme.Highlight.Render("━━━")
		} else {
			dots[i] = theme.DefaultTheme.Muted.Render("•")
		}
	}
	title := theme.DefaultTheme.Header.Render("grove-forge")
	return fmt.Sprintf("%s  %s  %s", title, strings.Join(dots, " "),
		theme.DefaultTheme.Muted.Render(st.Kind.String()))
}

// stepBadge renders a numbered step marker, lit once the run reaches from.
func stepBadge(n int, phase, from sequencer.Phase) string {
	label := strconv.Itoa(n)
	if phase >= from {
		return theme.DefaultTheme.Info.Render(label)
	}
	return theme.DefaultTheme.Muted.Render(label)
}

func (m Model) renderPromptStep(st sequencer.State) string {
	title := stepBadge(1, st.Phase, sequencer.TypingPrompt) + " " + theme.DefaultTheme.Bold.Render("Enter a prompt")

	line := theme.DefaultTheme.Muted.Render("$ ") + promptStyle.Render(st.Typed)
	if st.Phase == sequencer.TypingPrompt {
		if m.Sequencer.TypedLen() == m.Sequencer.PromptLen() {
			line += " " + m.Spinner.View()
		} else if m.CursorVisible {
			line += promptStyle.Render("|")
		}
	}

	style := panelStyle
	if st.Phase == sequencer.TypingPrompt {
		style = activePanelStyle
	}
	return style.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", line))
}

func (m Model) renderParameterStep(st sequencer.State) string {
	title := stepBadge(2, st.Phase, sequencer.ParametersInteractive) + " " + theme.DefaultTheme.Bold.Render("Adjust parameters")
	if st.Phase == sequencer.ParametersInteractive {
		title += "  " + theme.DefaultTheme.Success.Render("interactive")
	}

	rows := []string{title, ""}
	if st.Phase < sequencer.ParametersInteractive {
		rows = append(rows, theme.DefaultTheme.Muted.Render("Waiting for the model..."))
	} else {
		for i, p := range st.Params {
			marker := "  "
			label := p.Label
			if i == m.Focus {
				marker = theme.DefaultTheme.Highlight.Render("▸ ")
				label = theme.DefaultTheme.Bold.Render(label)
			}
			value := valueStyle.Render(strconv.FormatFloat(p.Value, 'f', -1, 64))
			rows = append(rows,
				marker+label+"  "+value,
				"  "+m.Slider.ViewAs(p.Fraction()),
			)
		}
	}

	style := panelStyle
	if st.Phase == sequencer.ParametersInteractive {
		style = activePanelStyle
	}
	return style.Width(sidebarWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderPreview(st sequencer.State, width, height int) string {
	title := theme.DefaultTheme.Bold.Render("3D Preview")
	// Border and padding take two rows and four columns; the title takes two rows.
	cols, rows := width-4, height-4
	if cols < 1 || rows < 1 {
		return ""
	}

	var canvas string
	if st.Phase < sequencer.ModelShown {
		canvas = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			theme.DefaultTheme.Muted.Render("No model yet"))
	} else {
		canvas = m.Viewport.Render(m.Stage.Scene(), cols, rows).Paint(paintRun)
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", canvas))
}

// paintRun colours one run of viewport cells.
func paintRun(run string, layer scene.Layer, color uint32) string {
	switch layer {
	case scene.LayerGrid:
		return theme.DefaultTheme.Muted.Render(run)
	case scene.LayerHole:
		// Holes are black in the material; draw them in a visible accent instead.
		return theme.DefaultTheme.Warning.Render(run)
	case scene.LayerSolid:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%06x", color))).Render(run)
	default:
		return run
	}
}
