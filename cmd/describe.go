package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/mattsolo1/grove-forge/pkg/geometry"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	describeSets      []string
	describeCatalogue string
)

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <kind>",
		Short: "Build one model and print its mesh layout",
		Long: `Build the model for a shape kind from its catalogue defaults and print every
mesh with its geometry, dimensions, position and material, followed by the
model bounds.

Parameters can be overridden with --set name=value. Values outside the
parameter's range are clamped.`,
		Example: `  forge describe bracket
  forge describe box --set dividers=3 --set length=100
  forge describe standoff --json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE:      runDescribe,
	}
	cmd.Flags().StringArrayVar(&describeSets, "set", nil, "Override a parameter (name=value)")
	cmd.Flags().StringVar(&describeCatalogue, "catalogue", "", "Scenario catalogue file (overrides grove.yml)")
	return cmd
}

func kindNames() []string {
	names := make([]string, len(scenario.Kinds))
	for i, k := range scenario.Kinds {
		names[i] = k.String()
	}
	return names
}

func runDescribe(cmd *cobra.Command, args []string) error {
	kind, err := scenario.ParseShapeKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (expected one of: %s)", err, strings.Join(kindNames(), ", "))
	}

	cfg, err := loadForgeConfig()
	if err != nil {
		return err
	}
	catalogue, err := cfg.LoadCatalogue(describeCatalogue)
	if err != nil {
		return err
	}

	summary, err := describeModel(catalogue, kind, describeSets)
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), summary, cli.GetOptions(cmd).JSONOutput)
}

// describeModel builds kind with the catalogue defaults plus overrides.
func describeModel(catalogue *scenario.Catalogue, kind scenario.ShapeKind, sets []string) (geometry.ModelSummary, error) {
	sc, ok := catalogue.Find(kind)
	if !ok {
		return geometry.ModelSummary{}, fmt.Errorf("catalogue has no %s scenario", kind)
	}
	params, err := applyOverrides(sc.Params, sets)
	if err != nil {
		return geometry.ModelSummary{}, err
	}

	model, ok := geometry.NewBuilder(catalogue).Build(kind, params.Values())
	if !ok {
		return geometry.ModelSummary{}, fmt.Errorf("%w: %s", scenario.ErrUnknownShape, kind)
	}
	defer model.Dispose()
	return geometry.Summarize(model), nil
}

// applyOverrides parses name=value pairs and replaces the named values,
// clamped to their bounds.
func applyOverrides(params scenario.ParamSet, sets []string) (scenario.ParamSet, error) {
	out := params.Clone()
	for _, set := range sets {
		name, raw, found := strings.Cut(set, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", set)
		}
		name = strings.TrimSpace(name)
		p, ok := out.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (have %s)", scenario.ErrUnknownParameter, name, strings.Join(out.Names(), ", "))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q for %s", sequencer.ErrInvalidValue, raw, name)
		}
		if out, err = out.With(name, p.Clamp(v)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeSummary(w io.Writer, summary geometry.ModelSummary, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal model summary to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode model summary: %w", err)
	}
	return enc.Close()
}
