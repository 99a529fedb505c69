package demo_tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-forge/pkg/geometry"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/mattsolo1/grove-forge/pkg/scene"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, dwell time.Duration) Model {
	t.Helper()
	cat := scenario.DefaultCatalogue()
	stage := scene.NewStage(scene.New(), geometry.NewBuilder(cat))
	seq := sequencer.New(cat, stage, sequencer.WithTimings(sequencer.Timings{
		StartDelay:       time.Millisecond,
		TypeInterval:     time.Millisecond,
		ModelDelay:       time.Millisecond,
		InteractiveDelay: time.Millisecond,
		Dwell:            dwell,
	}))
	return New(seq, stage, Options{FrameInterval: time.Millisecond})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// deliver feeds d to the model and returns the follow-up deferred, if any.
func deliver(t *testing.T, m Model, d sequencer.Deferred) (Model, sequencer.Deferred, bool) {
	t.Helper()
	updated, cmd := m.Update(DeferredMsg{Deferred: d})
	m = updated.(Model)
	if cmd == nil {
		return m, sequencer.Deferred{}, false
	}
	msg, ok := cmd().(DeferredMsg)
	require.True(t, ok, "deferred should schedule another deferred")
	return m, msg.Deferred, true
}

// driveTo fires deferreds until the sequencer reaches phase.
func driveTo(t *testing.T, m Model, d sequencer.Deferred, phase sequencer.Phase) (Model, sequencer.Deferred) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if m.Sequencer.State().Phase == phase {
			return m, d
		}
		var ok bool
		m, d, ok = deliver(t, m, d)
		require.True(t, ok)
	}
	t.Fatalf("never reached phase %s", phase)
	return m, d
}

func TestDeferredMessagesDriveRun(t *testing.T) {
	m := newTestModel(t, time.Hour)
	m, _ = driveTo(t, m, m.Sequencer.Start(), sequencer.ParametersInteractive)

	st := m.Sequencer.State()
	assert.Equal(t, st.Prompt, st.Typed)
	require.NotNil(t, m.Stage.Scene().Model())
	assert.Equal(t, scenario.ShapeBracket, m.Stage.Scene().Model().Kind)

	view := m.View()
	assert.Contains(t, view, "Make an L-bracket")
	assert.Contains(t, view, "Width (mm)")
	assert.Contains(t, view, "interactive")
}

func TestStaleDeferredIsDropped(t *testing.T) {
	m := newTestModel(t, time.Hour)
	stale := m.Sequencer.Start()

	updated, cmd := m.Update(runes("n"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.Sequencer.State().Index)

	updated, cmd = m.Update(DeferredMsg{Deferred: stale})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, sequencer.Idle, m.Sequencer.State().Phase)
}

func TestNudgeWaitsForInteractive(t *testing.T) {
	m := newTestModel(t, time.Hour)
	d := m.Sequencer.Start()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	assert.NotEmpty(t, m.StatusSummary)

	m, _ = driveTo(t, m, d, sequencer.ParametersInteractive)
	builds := m.Stage.Builds()

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.Focus)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	assert.Empty(t, m.StatusSummary)
	v, _ := m.Sequencer.State().Params.Value("height")
	assert.Equal(t, 41.0, v)
	assert.Equal(t, builds+1, m.Stage.Builds())

	updated, _ = m.Update(runes("h"))
	m = updated.(Model)
	v, _ = m.Sequencer.State().Params.Value("height")
	assert.Equal(t, 40.0, v)
}

func TestFocusStaysWithinParameters(t *testing.T) {
	m := newTestModel(t, time.Hour)
	m, _ = driveTo(t, m, m.Sequencer.Start(), sequencer.ParametersInteractive)

	for i := 0; i < 10; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(Model)
	}
	assert.Equal(t, 3, m.Focus)

	for i := 0; i < 10; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = updated.(Model)
	}
	assert.Equal(t, 0, m.Focus)
}

func TestNumberKeysSelectScenario(t *testing.T) {
	m := newTestModel(t, time.Hour)
	m.Sequencer.Start()

	tests := []struct {
		key       string
		wantIndex int
		wantWarn  bool
	}{
		{"3", 2, false},
		{"1", 0, false},
		{"9", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			updated, _ := m.Update(runes(tt.key))
			m = updated.(Model)
			assert.Equal(t, tt.wantIndex, m.Sequencer.State().Index)
			if tt.wantWarn {
				assert.Contains(t, m.StatusSummary, "No scenario 9")
			} else {
				assert.Empty(t, m.StatusSummary)
			}
		})
	}
}

func TestAutoAdvanceResetsFocus(t *testing.T) {
	m := newTestModel(t, time.Millisecond)
	d := m.Sequencer.Start()
	m, d = driveTo(t, m, d, sequencer.ParametersInteractive)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	require.Equal(t, 1, m.Focus)

	m, _, ok := deliver(t, m, d)
	require.True(t, ok)
	assert.Equal(t, 1, m.Sequencer.State().Index)
	assert.Equal(t, 0, m.Focus)
	assert.Equal(t, sequencer.Idle, m.Sequencer.State().Phase)
	assert.Contains(t, m.View(), "No model yet")
}

func TestFrameMsgSpinsModel(t *testing.T) {
	m := newTestModel(t, time.Hour)
	m, _ = driveTo(t, m, m.Sequencer.Start(), sequencer.ModelShown)

	updated, cmd := m.Update(FrameMsg(time.Now()))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.Viewport.Frames)
	assert.Greater(t, m.Stage.Scene().Model().Rotation.Y, 0.0)
}

func TestHelpAndQuit(t *testing.T) {
	m := newTestModel(t, time.Hour)

	updated, _ := m.Update(runes("?"))
	m = updated.(Model)
	assert.True(t, m.Help.ShowAll)

	// Quit closes the overlay first.
	updated, cmd := m.Update(runes("q"))
	m = updated.(Model)
	assert.False(t, m.Help.ShowAll)
	assert.Nil(t, cmd)

	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewBeforeResize(t *testing.T) {
	m := newTestModel(t, time.Hour)
	var view string
	assert.NotPanics(t, func() { view = m.View() })
	assert.Contains(t, view, "grove-forge")
	assert.Contains(t, view, "No model yet")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 120, m.Width)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestMultibytePromptShowsSpinnerWhenTyped(t *testing.T) {
	prompt := "L字ブラケットを作って、M3のネジ穴付き"
	base := scenario.DefaultCatalogue()
	bracket, ok := base.Find(scenario.ShapeBracket)
	require.True(t, ok)
	bracket.Prompt = prompt
	cat, err := scenario.NewCatalogue([]scenario.Scenario{bracket})
	require.NoError(t, err)

	stage := scene.NewStage(scene.New(), geometry.NewBuilder(cat))
	seq := sequencer.New(cat, stage, sequencer.WithTimings(sequencer.Timings{
		StartDelay:       time.Millisecond,
		TypeInterval:     time.Millisecond,
		ModelDelay:       time.Millisecond,
		InteractiveDelay: time.Millisecond,
		Dwell:            time.Hour,
	}))
	m := New(seq, stage, Options{FrameInterval: time.Millisecond})
	require.Equal(t, 20, m.Sequencer.PromptLen())

	m, d := driveTo(t, m, m.Sequencer.Start(), sequencer.TypingPrompt)
	for m.Sequencer.TypedLen() < 3 {
		m, d, ok = deliver(t, m, d)
		require.True(t, ok)
	}
	st := m.Sequencer.State()
	assert.Equal(t, "L字ブ", st.Typed)
	assert.Contains(t, m.renderPromptStep(st), "|", "cursor shows while typing")

	for m.Sequencer.TypedLen() < m.Sequencer.PromptLen() {
		m, d, ok = deliver(t, m, d)
		require.True(t, ok)
	}
	st = m.Sequencer.State()
	require.Equal(t, sequencer.TypingPrompt, st.Phase)
	assert.Equal(t, prompt, st.Typed)
	line := m.renderPromptStep(st)
	assert.Contains(t, line, m.Spinner.Spinner.Frames[0])
	assert.NotContains(t, line, "|", "cursor hides once the prompt is typed")

	m, _ = driveTo(t, m, d, sequencer.ParametersInteractive)
	assert.Contains(t, m.View(), prompt)
}
