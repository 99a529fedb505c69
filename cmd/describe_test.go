package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mattsolo1/grove-forge/pkg/geometry"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
	"github.com/mattsolo1/grove-forge/pkg/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestApplyOverrides(t *testing.T) {
	sc, ok := scenario.DefaultCatalogue().Find(scenario.ShapeBox)
	require.True(t, ok)

	tests := []struct {
		name    string
		sets    []string
		want    map[string]float64
		wantErr error
	}{
		{
			name: "none",
			want: map[string]float64{"length": 80, "dividers": 2},
		},
		{
			name: "replace and clamp",
			sets: []string{"dividers=3", " length = 500"},
			want: map[string]float64{"length": 120, "dividers": 3, "width": 60},
		},
		{
			name:    "unknown parameter",
			sets:    []string{"depth=3"},
			wantErr: scenario.ErrUnknownParameter,
		},
		{
			name:    "not a number",
			sets:    []string{"width=wide"},
			wantErr: sequencer.ErrInvalidValue,
		},
		{
			name:    "infinite",
			sets:    []string{"width=Inf"},
			wantErr: sequencer.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyOverrides(sc.Params, tt.sets)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			for name, want := range tt.want {
				v, _ := got.Value(name)
				assert.Equal(t, want, v, name)
			}
		})
	}

	_, err := applyOverrides(sc.Params, []string{"dividers"})
	assert.ErrorContains(t, err, "expected name=value")

	// The catalogue's own set is untouched.
	v, _ := sc.Params.Value("dividers")
	assert.Equal(t, 2.0, v)
}

func TestDescribeModel(t *testing.T) {
	cat := scenario.DefaultCatalogue()

	summary, err := describeModel(cat, scenario.ShapeBox, []string{"dividers=4"})
	require.NoError(t, err)
	assert.Equal(t, scenario.ShapeBox, summary.Kind)

	var dividers int
	for _, m := range summary.Meshes {
		if strings.HasPrefix(m.Name, geometry.DividerPrefix) {
			dividers++
		}
	}
	assert.Equal(t, 4, dividers)
	assert.Len(t, summary.Meshes, 5+4)
}

func TestDescribeModelMissingFromCatalogue(t *testing.T) {
	cat, err := scenario.NewCatalogue([]scenario.Scenario{mustFind(t, scenario.ShapeBracket)})
	require.NoError(t, err)

	_, err = describeModel(cat, scenario.ShapeStandoff, nil)
	assert.ErrorContains(t, err, "no standoff scenario")
}

func mustFind(t *testing.T, kind scenario.ShapeKind) scenario.Scenario {
	t.Helper()
	s, ok := scenario.DefaultCatalogue().Find(kind)
	require.True(t, ok)
	return s
}

func TestWriteSummary(t *testing.T) {
	summary, err := describeModel(scenario.DefaultCatalogue(), scenario.ShapeStandoff, nil)
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSummary(&buf, summary, false))

		var decoded geometry.ModelSummary
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, summary.ID, decoded.ID)
		assert.Contains(t, buf.String(), "name: hex_head")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSummary(&buf, summary, true))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "standoff", decoded["kind"])
		assert.Len(t, decoded["meshes"], 3)
	})
}

func TestFormatParams(t *testing.T) {
	s := mustFind(t, scenario.ShapeBracket)
	assert.Equal(t, "width=30 height=40 thickness=3 hole_size=3", formatParams(s.Params))
}
