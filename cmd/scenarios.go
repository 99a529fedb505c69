package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattsolo1/grove-core/cli"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/spf13/cobra"
)

var scenariosCatalogue string

// NewScenariosCmd creates the scenarios command.
func NewScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the demo scenarios and their parameters",
		Args:  cobra.NoArgs,
		RunE:  runScenarios,
	}
	cmd.Flags().StringVar(&scenariosCatalogue, "catalogue", "", "Scenario catalogue file (overrides grove.yml)")
	return cmd
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadForgeConfig()
	if err != nil {
		return err
	}
	catalogue, err := cfg.LoadCatalogue(scenariosCatalogue)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cli.GetOptions(cmd).JSONOutput {
		data, err := json.MarshalIndent(catalogue.Scenarios(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal scenarios to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for i, s := range catalogue.Scenarios() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s\n", color.CyanString("%d.", i+1), color.GreenString(s.Kind.String()))
		fmt.Fprintf(out, "   %s\n", s.Prompt)
		for _, p := range s.Params {
			fmt.Fprintf(out, "   %-18s %s %s\n",
				p.Label,
				color.YellowString(formatValue(p.Value)),
				fmt.Sprintf("[%s, %s]", formatValue(p.Min), formatValue(p.Max)))
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatParams renders a parameter set as name=value pairs.
func formatParams(ps scenario.ParamSet) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name + "=" + formatValue(p.Value)
	}
	return strings.Join(parts, " ")
}
