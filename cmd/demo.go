package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-forge/cmd/demo_tui"
	"github.com/mattsolo1/grove-forge/pkg/geometry"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/mattsolo1/grove-forge/pkg/scene"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	demoScenario  int
	demoHeadless  bool
	demoRuns      int
	demoCatalogue string
	demoNoColor   bool
)

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play the scripted prompt-to-model demo",
		Long: `Play the looping demo: a canned prompt is typed, its parametric model is
generated and shown in a rotating viewport, the parameters unlock for editing,
and after a short dwell the next scenario starts.

When stdout is not a terminal, or with --headless, the demo runs without a UI
and logs each transition instead.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}

	cmd.Flags().IntVar(&demoScenario, "scenario", 1, "Scenario to start with (1-based)")
	cmd.Flags().BoolVar(&demoHeadless, "headless", false, "Run without the interactive UI")
	cmd.Flags().IntVar(&demoRuns, "runs", 0, "Stop after this many scenario runs (headless only, 0 = forever)")
	cmd.Flags().StringVar(&demoCatalogue, "catalogue", "", "Scenario catalogue file (overrides grove.yml)")
	cmd.Flags().BoolVar(&demoNoColor, "no-color", false, "Disable colours in the demo UI")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadForgeConfig()
	if err != nil {
		return err
	}
	catalogue, err := cfg.LoadCatalogue(demoCatalogue)
	if err != nil {
		return err
	}
	timings, err := cfg.Timings()
	if err != nil {
		return err
	}
	if demoScenario < 1 || demoScenario > catalogue.Len() {
		return fmt.Errorf("--scenario must be between 1 and %d: %w", catalogue.Len(), sequencer.ErrScenarioIndex)
	}

	if demoHeadless || !isTerminal() {
		return runHeadlessDemo(cmd.Context(), catalogue, timings)
	}
	return runDemoTUI(cfg, catalogue, timings)
}

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func runDemoTUI(cfg *ForgeConfig, catalogue *scenario.Catalogue, timings sequencer.Timings) error {
	if demoNoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	stage := scene.NewStage(scene.New(), geometry.NewBuilder(catalogue))
	seq := sequencer.New(catalogue, stage,
		sequencer.WithTimings(timings),
		sequencer.WithStartIndex(demoScenario-1),
	)
	model := demo_tui.New(seq, stage, demo_tui.Options{FrameInterval: cfg.FrameInterval()})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running demo TUI: %w", err)
	}
	return nil
}

// runHeadlessDemo drives the sequencer on wall-clock timers and reports each
// transition through the pretty logger.
func runHeadlessDemo(ctx context.Context, catalogue *scenario.Catalogue, timings sequencer.Timings) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := grovelogging.NewLogger("grove-forge.demo")
	pretty := grovelogging.NewPrettyLogger()

	stage := scene.NewStage(scene.New(), geometry.NewBuilder(catalogue))
	observer := func(ev sequencer.Event) {
		st := ev.State
		logger.WithFields(map[string]interface{}{
			"event": ev.Kind.String(),
			"run":   st.Run,
			"index": st.Index,
			"phase": st.Phase.String(),
		}).Debug("Demo event")

		switch ev.Kind {
		case sequencer.EventActivated:
			pretty.Blank()
			pretty.InfoPretty(fmt.Sprintf("Scenario %d/%d: %s", st.Index+1, catalogue.Len(), st.Kind))
		case sequencer.EventPhaseChanged:
			switch st.Phase {
			case sequencer.TypingPrompt:
				pretty.InfoPretty("Typing prompt...")
			case sequencer.ParametersInteractive:
				pretty.InfoPretty(fmt.Sprintf("Parameters unlocked: %s", formatParams(st.Params)))
			}
		case sequencer.EventTyped:
			if st.Typed == st.Prompt {
				pretty.InfoPretty("$ " + st.Prompt)
			}
		case sequencer.EventRegenerated:
			if !st.ModelAttached {
				pretty.WarnPretty(fmt.Sprintf("No model for %s", st.Kind))
				return
			}
			model := stage.Scene().Model()
			pretty.Success(fmt.Sprintf("Model %s ready: %d meshes", model.Kind, len(model.Children)))
		}
	}

	seq := sequencer.New(catalogue, stage,
		sequencer.WithTimings(timings),
		sequencer.WithObserver(observer),
		sequencer.WithStartIndex(demoScenario-1),
	)

	runner := sequencer.NewRunner(seq, sequencer.WithMaxRuns(demoRuns))
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
