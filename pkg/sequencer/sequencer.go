package sequencer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/sirupsen/logrus"
)

var (
	// ErrScenarioIndex is returned when selecting an index outside the catalogue.
	ErrScenarioIndex = errors.New("scenario index out of range")
	// ErrInvalidValue is returned when a parameter edit is not a finite number.
	ErrInvalidValue = errors.New("invalid parameter value")
	// ErrNotReady is returned when parameters are edited before the model is shown.
	ErrNotReady = errors.New("parameters are not initialised yet")
	// ErrUnknownParameter is returned when editing a name the scenario does not define.
	ErrUnknownParameter = scenario.ErrUnknownParameter
)

// ModelHost regenerates the displayed model. Implementations must release the
// previous model before attaching a new one.
type ModelHost interface {
	Regenerate(kind scenario.ShapeKind, params scenario.ParamSet) bool
}

// RunID is the cancellation token of one scenario run. Activating a scenario
// issues a new RunID, which invalidates every deferred action of the old run.
type RunID uint64

// Action is the step a deferred performs when it fires.
type Action int

const (
	ActionBeginTyping Action = iota + 1
	ActionTypeRune
	ActionShowModel
	ActionUnlock
	ActionAdvance
)

func (a Action) String() string {
	switch a {
	case ActionBeginTyping:
		return "begin-typing"
	case ActionTypeRune:
		return "type-rune"
	case ActionShowModel:
		return "show-model"
	case ActionUnlock:
		return "unlock"
	case ActionAdvance:
		return "advance"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Deferred is a cancellable deferred action. Drivers wait Delay and hand it
// back to Fire. A deferred from a cancelled run is dropped by Fire.
type Deferred struct {
	Run    RunID
	Action Action
	Delay  time.Duration
	seq    uint64
}

// EventKind classifies an observer notification.
type EventKind int

const (
	EventActivated EventKind = iota
	EventPhaseChanged
	EventTyped
	EventRegenerated
)

func (k EventKind) String() string {
	return [...]string{"activated", "phase", "typed", "regenerated"}[k]
}

// Event reports a state change together with a snapshot taken after it.
type Event struct {
	Kind  EventKind
	State State
}

// State is a snapshot of the sequencer.
type State struct {
	Run    RunID
	Index  int
	Phase  Phase
	Kind   scenario.ShapeKind
	Prompt string
	// Typed is the revealed prefix of Prompt.
	Typed         string
	Params        scenario.ParamSet
	ModelAttached bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithTimings overrides the default delays.
func WithTimings(t Timings) Option {
	return func(s *Sequencer) { s.timings = t }
}

// WithObserver registers a callback for every state change.
func WithObserver(fn func(Event)) Option {
	return func(s *Sequencer) { s.observers = append(s.observers, fn) }
}

// WithStartIndex makes Start activate the scenario at index. Out-of-range
// indexes start at the first scenario.
func WithStartIndex(index int) Option {
	return func(s *Sequencer) { s.index = index }
}

// Sequencer drives the scripted demo: it types the active scenario's prompt,
// shows its model, unlocks the parameters and auto-advances. It is not safe
// for concurrent use; a single driver owns it.
type Sequencer struct {
	catalogue *scenario.Catalogue
	host      ModelHost
	timings   Timings
	observers []func(Event)
	log       *logrus.Entry

	run      RunID
	seq      uint64
	index    int
	current  scenario.Scenario
	prompt   []rune
	typed    int
	phase    Phase
	params   scenario.ParamSet
	attached bool
}

// New creates a sequencer over catalogue that regenerates models through host.
func New(catalogue *scenario.Catalogue, host ModelHost, opts ...Option) *Sequencer {
	s := &Sequencer{
		catalogue: catalogue,
		host:      host,
		timings:   DefaultTimings(),
		log:       grovelogging.NewLogger("grove-forge.sequencer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.index < 0 || s.index >= catalogue.Len() {
		s.index = 0
	}
	s.current, _ = catalogue.At(s.index)
	s.prompt = []rune(s.current.Prompt)
	return s
}

// Timings returns the delays in use.
func (s *Sequencer) Timings() Timings {
	return s.timings
}

// Catalogue returns the scenarios the sequencer cycles through.
func (s *Sequencer) Catalogue() *scenario.Catalogue {
	return s.catalogue
}

// Start activates the current scenario from Idle.
func (s *Sequencer) Start() Deferred {
	return s.activate(s.index)
}

// Select cancels the current run and restarts the sequence at Idle for index.
func (s *Sequencer) Select(index int) (Deferred, error) {
	if index < 0 || index >= s.catalogue.Len() {
		return Deferred{}, fmt.Errorf("%w: %d (have %d)", ErrScenarioIndex, index, s.catalogue.Len())
	}
	return s.activate(index), nil
}

// Next cancels the current run and activates the following scenario.
func (s *Sequencer) Next() Deferred {
	return s.activate(s.catalogue.Next(s.index))
}

// Prev cancels the current run and activates the preceding scenario.
func (s *Sequencer) Prev() Deferred {
	return s.activate(s.catalogue.Prev(s.index))
}

func (s *Sequencer) activate(index int) Deferred {
	cancelled := s.run
	s.run++
	s.index = index
	s.current, _ = s.catalogue.At(index)
	s.prompt = []rune(s.current.Prompt)
	s.typed = 0
	s.phase = Idle
	s.params = nil

	s.log.WithFields(map[string]interface{}{
		"run":       s.run,
		"cancelled": cancelled,
		"index":     index,
		"kind":      s.current.Kind,
	}).Debug("Activated scenario")
	s.emit(EventActivated)
	return s.schedule(ActionBeginTyping, s.timings.StartDelay)
}

func (s *Sequencer) schedule(a Action, d time.Duration) Deferred {
	s.seq++
	return Deferred{Run: s.run, Action: a, Delay: d, seq: s.seq}
}

// Fire performs a deferred action and returns the follow-up, if any. Deferreds
// from a cancelled run, or ones already superseded, are dropped.
func (s *Sequencer) Fire(d Deferred) (Deferred, bool) {
	if d.Run != s.run || d.seq != s.seq {
		s.log.WithFields(map[string]interface{}{
			"run":     d.Run,
			"current": s.run,
			"action":  d.Action.String(),
		}).Debug("Dropped stale deferred action")
		return Deferred{}, false
	}

	switch d.Action {
	case ActionBeginTyping:
		s.setPhase(TypingPrompt)
		return s.afterTyped(), true

	case ActionTypeRune:
		s.typed++
		s.emit(EventTyped)
		return s.afterTyped(), true

	case ActionShowModel:
		s.setPhase(ModelShown)
		s.params = s.current.Params.Clone()
		s.regenerate()
		return s.schedule(ActionUnlock, s.timings.InteractiveDelay), true

	case ActionUnlock:
		s.setPhase(ParametersInteractive)
		return s.schedule(ActionAdvance, s.timings.Dwell), true

	case ActionAdvance:
		return s.activate(s.catalogue.Next(s.index)), true
	}

	s.log.WithField("action", d.Action.String()).Warn("Ignoring unknown deferred action")
	return Deferred{}, false
}

// afterTyped schedules the next character, or the model once the prompt is complete.
func (s *Sequencer) afterTyped() Deferred {
	if s.typed < len(s.prompt) {
		return s.schedule(ActionTypeRune, s.timings.TypeInterval)
	}
	return s.schedule(ActionShowModel, s.timings.ModelDelay)
}

func (s *Sequencer) setPhase(p Phase) {
	s.phase = p
	s.log.WithFields(map[string]interface{}{
		"run":   s.run,
		"index": s.index,
		"phase": p.String(),
	}).Debug("Phase changed")
	s.emit(EventPhaseChanged)
}

func (s *Sequencer) regenerate() {
	s.attached = s.host.Regenerate(s.current.Kind, s.params)
	s.emit(EventRegenerated)
}

// SetParameter parses raw as a number and replaces the named parameter's
// value, then regenerates the model with the full updated set. Unparseable
// and non-finite input is rejected and leaves state unchanged. Values outside
// the parameter's bounds are clamped.
func (s *Sequencer) SetParameter(name, raw string) error {
	if s.params == nil {
		return ErrNotReady
	}
	p, ok := s.params.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidValue, raw, name)
	}

	updated, err := s.params.With(name, p.Clamp(v))
	if err != nil {
		return err
	}
	s.params = updated
	s.regenerate()
	return nil
}

// Nudge moves the named parameter by whole slider steps.
func (s *Sequencer) Nudge(name string, steps int) error {
	if s.params == nil {
		return ErrNotReady
	}
	p, ok := s.params.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	v := p.Clamp(p.Value + float64(steps)*SliderStep)
	return s.SetParameter(name, strconv.FormatFloat(v, 'f', -1, 64))
}

// SliderStep is the increment of one slider movement.
const SliderStep = 1.0

// State returns a snapshot of the sequencer.
func (s *Sequencer) State() State {
	return State{
		Run:           s.run,
		Index:         s.index,
		Phase:         s.phase,
		Kind:          s.current.Kind,
		Prompt:        s.current.Prompt,
		Typed:         string(s.prompt[:s.typed]),
		Params:        s.params.Clone(),
		ModelAttached: s.attached,
	}
}

// TypedLen returns how many characters of the prompt are revealed.
func (s *Sequencer) TypedLen() int {
	return s.typed
}

// PromptLen returns the prompt length in characters.
func (s *Sequencer) PromptLen() int {
	return utf8.RuneCountInString(s.current.Prompt)
}

func (s *Sequencer) emit(kind EventKind) {
	if len(s.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, State: s.State()}
	for _, fn := range s.observers {
		fn(ev)
	}
}
