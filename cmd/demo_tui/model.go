package demo_tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/components/help"
	"github.com/mattsolo1/grove-core/tui/theme"
	"github.com/mattsolo1/grove-forge/pkg/scene"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	sidebarWidth  = 46
	sliderWidth   = 20
)

// Options tune the demo model.
type Options struct {
	FrameInterval time.Duration
	Zoom          float64
}

// Model represents the state of the demo TUI
type Model struct {
	Sequencer     *sequencer.Sequencer
	Stage         *scene.Stage
	Viewport      *scene.Viewport
	KeyMap        KeyMap
	Help          help.Model
	Spinner       spinner.Model
	Slider        progress.Model
	Focus         int // index of the focused slider
	StatusSummary string
	CursorVisible bool
	FrameInterval time.Duration
	Width         int
	Height        int
}

// New creates a demo model over seq. stage must be the host seq regenerates through.
func New(seq *sequencer.Sequencer, stage *scene.Stage, opts Options) Model {
	keyMap := NewKeyMap()
	helpModel := help.NewBuilder().
		WithKeys(keyMap).
		WithTitle("Forge Demo - Help").
		Build()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.DefaultColors.Orange)

	slider := progress.New(
		progress.WithSolidFill("#3b82f6"),
		progress.WithoutPercentage(),
		progress.WithWidth(sliderWidth),
	)

	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 30
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	return Model{
		Sequencer:     seq,
		Stage:         stage,
		Viewport:      scene.NewViewport(zoom),
		KeyMap:        keyMap,
		Help:          helpModel,
		Spinner:       spin,
		Slider:        slider,
		CursorVisible: true,
		FrameInterval: opts.FrameInterval,
	}
}

// Init starts the first scenario run and the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		schedule(m.Sequencer.Start()),
		frameTick(m.FrameInterval),
		blink(),
		m.Spinner.Tick,
	)
}

// size returns the terminal size, with a fallback before the first resize.
func (m Model) size() (int, int) {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}
