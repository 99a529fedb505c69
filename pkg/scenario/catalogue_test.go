package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogue(t *testing.T) {
	c := DefaultCatalogue()
	require.Equal(t, 3, c.Len())

	kinds := make([]ShapeKind, 0, c.Len())
	for _, s := range c.Scenarios() {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []ShapeKind{ShapeBracket, ShapeBox, ShapeStandoff}, kinds)

	box, ok := c.Find(ShapeBox)
	require.True(t, ok)
	assert.Equal(t, []string{"length", "width", "height", "dividers"}, box.Params.Names())
	v, ok := box.Params.Value("length")
	require.True(t, ok)
	assert.Equal(t, 80.0, v)
}

func TestCatalogueNextWraps(t *testing.T) {
	c := DefaultCatalogue()
	assert.Equal(t, 1, c.Next(0))
	assert.Equal(t, 2, c.Next(1))
	assert.Equal(t, 0, c.Next(2))
	assert.Equal(t, 2, c.Prev(0))
}

func TestCatalogueAtReturnsCopy(t *testing.T) {
	c := DefaultCatalogue()
	s, ok := c.At(0)
	require.True(t, ok)
	s.Params[0].Value = 999

	again, _ := c.At(0)
	assert.Equal(t, 30.0, again.Params[0].Value)

	_, ok = c.At(3)
	assert.False(t, ok)
}

func TestParamSetWith(t *testing.T) {
	set := ParamSet{
		{Name: "width", Value: 30, Min: 20, Max: 50, Label: "Width"},
		{Name: "height", Value: 40, Min: 30, Max: 60, Label: "Height"},
	}

	updated, err := set.With("width", 42)
	require.NoError(t, err)
	assert.Equal(t, Param{Name: "width", Value: 42, Min: 20, Max: 50, Label: "Width"}, updated[0])
	assert.Equal(t, set[1], updated[1])
	assert.Equal(t, 30.0, set[0].Value, "original set must not change")

	_, err = set.With("depth", 1)
	assert.True(t, errors.Is(err, ErrUnknownParameter))
}

func TestParamFraction(t *testing.T) {
	p := Param{Value: 35, Min: 20, Max: 50}
	assert.InDelta(t, 0.5, p.Fraction(), 1e-9)
	assert.Equal(t, 20.0, p.Clamp(-5))
	assert.Equal(t, 50.0, p.Clamp(80))
}

func TestParseShapeKind(t *testing.T) {
	k, err := ParseShapeKind("standoff")
	require.NoError(t, err)
	assert.Equal(t, ShapeStandoff, k)

	_, err = ParseShapeKind("gear")
	assert.True(t, errors.Is(err, ErrUnknownShape))
}

func TestParseCatalogue(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "valid single scenario",
			doc: `
scenarios:
  - prompt: "Make a tiny bracket"
    kind: bracket
    params:
      - {name: width, value: 20, min: 20, max: 50, label: "Width"}
      - {name: height, value: 30, min: 30, max: 60, label: "Height"}
      - {name: thickness, value: 2, min: 2, max: 8, label: "Thickness"}
      - {name: hole_size, value: 2, min: 2, max: 6, label: "Hole"}
`,
		},
		{
			name:    "empty",
			doc:     "scenarios: []",
			wantErr: "no scenarios",
		},
		{
			name: "unknown kind",
			doc: `
scenarios:
  - prompt: "Make a gear"
    kind: gear
`,
			wantErr: "unknown shape kind",
		},
		{
			name: "missing required parameter",
			doc: `
scenarios:
  - prompt: "Make a standoff"
    kind: standoff
    params:
      - {name: diameter, value: 8, min: 6, max: 12}
`,
			wantErr: `requires parameter "height"`,
		},
		{
			name: "value out of range",
			doc: `
scenarios:
  - prompt: "Make a box"
    kind: box
    params:
      - {name: length, value: 10, min: 50, max: 120}
      - {name: width, value: 60, min: 40, max: 100}
      - {name: height, value: 40, min: 20, max: 60}
      - {name: dividers, value: 2, min: 0, max: 4}
`,
			wantErr: "outside",
		},
		{
			name: "duplicate parameter",
			doc: `
scenarios:
  - prompt: "Make a box"
    kind: box
    params:
      - {name: length, value: 80, min: 50, max: 120}
      - {name: length, value: 80, min: 50, max: 120}
`,
			wantErr: "duplicate",
		},
		{
			name: "nan value",
			doc: `
scenarios:
  - prompt: "Make a box"
    kind: box
    params:
      - {name: length, value: .nan, min: 50, max: 120}
      - {name: width, value: 60, min: 40, max: 100}
      - {name: height, value: 40, min: 20, max: 60}
      - {name: dividers, value: 2, min: 0, max: 4}
`,
			wantErr: `"length": value must be a finite number`,
		},
		{
			name: "nan bound",
			doc: `
scenarios:
  - prompt: "Make a box"
    kind: box
    params:
      - {name: length, value: 80, min: .nan, max: 120}
      - {name: width, value: 60, min: 40, max: 100}
      - {name: height, value: 40, min: 20, max: 60}
      - {name: dividers, value: 2, min: 0, max: 4}
`,
			wantErr: `"length": min must be a finite number`,
		},
		{
			name: "infinite bound",
			doc: `
scenarios:
  - prompt: "Make a box"
    kind: box
    params:
      - {name: length, value: 80, min: 50, max: .inf}
      - {name: width, value: 60, min: 40, max: 100}
      - {name: height, value: 40, min: 20, max: 60}
      - {name: dividers, value: 2, min: 0, max: 4}
`,
			wantErr: `"length": max must be a finite number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCatalogue([]byte(tt.doc))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestLoadCatalogue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yml")
	doc := `
scenarios:
  - prompt: "Make a standoff"
    kind: standoff
    params:
      - {name: diameter, value: 8, min: 6, max: 12, label: "Diameter"}
      - {name: height, value: 10, min: 5, max: 20, label: "Height"}
      - {name: hole_diameter, value: 3, min: 2, max: 5, label: "Hole"}
      - {name: hex_size, value: 6, min: 5, max: 10, label: "Hex"}
      - {name: finish, value: 1, min: 0, max: 3, label: "Finish"}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c, err := LoadCatalogue(path)
	require.NoError(t, err)
	s, ok := c.At(0)
	require.True(t, ok)
	assert.Len(t, s.Params, 5)

	_, err = LoadCatalogue(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
