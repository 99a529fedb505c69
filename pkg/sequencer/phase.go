package sequencer

import (
	"fmt"
	"time"
)

// Phase is a stage of one scenario run. Phases only move forward within a run.
type Phase int

const (
	Idle Phase = iota
	TypingPrompt
	ModelShown
	ParametersInteractive
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case TypingPrompt:
		return "typing"
	case ModelShown:
		return "model-shown"
	case ParametersInteractive:
		return "interactive"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Timings holds the fixed delays of a scenario run.
type Timings struct {
	// StartDelay is the wait from activation until typing begins.
	StartDelay time.Duration
	// TypeInterval is the wait between revealed characters.
	TypeInterval time.Duration
	// ModelDelay is the wait after the prompt is fully typed.
	ModelDelay       time.Duration
	InteractiveDelay time.Duration
	// Dwell is how long parameters stay interactive before auto-advancing.
	Dwell time.Duration
}

// DefaultTimings returns the canonical demo timings.
func DefaultTimings() Timings {
	return Timings{
		StartDelay:       500 * time.Millisecond,
		TypeInterval:     60 * time.Millisecond,
		ModelDelay:       800 * time.Millisecond,
		InteractiveDelay: 800 * time.Millisecond,
		Dwell:            5 * time.Second,
	}
}

// Validate rejects non-positive delays.
func (t Timings) Validate() error {
	checks := []struct {
		name string
		d    time.Duration
	}{
		{"start delay", t.StartDelay},
		{"type interval", t.TypeInterval},
		{"model delay", t.ModelDelay},
		{"interactive delay", t.InteractiveDelay},
		{"dwell", t.Dwell},
	}
	for _, c := range checks {
		if c.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", c.name, c.d)
		}
	}
	return nil
}
