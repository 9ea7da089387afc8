package stoich

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMolarMass(Te *testing.T) {
	o := DefaultOptions()
	cases := []struct {
		formula string
		mass    float64
		source  MassSource
	}{
		{"H2O", 18.02, SourceTable},
		{"H₂O", 18.02, SourceTable},
		{"H2O(l)", 18.02, SourceTable},
		{"Ag", 107.87, SourceTable},
		{"AgCl", 143.32, SourceElements},
		{"C", 12.01, SourceElements},
		{"C6H12O6", 180.156, SourceElements},
		{"Ca(OH)2", 74.096, SourceElements},
	}
	for _, c := range cases {
		m, err := o.MolarMass(c.formula)
		require.NoError(Te, err, c.formula)
		assert.InDelta(Te, c.mass, m.Value, 1e-9, c.formula)
		assert.Equal(Te, c.source, m.Source, c.formula)
		assert.Empty(Te, m.Warning(c.formula))
	}
	assert.InDelta(Te, 143.32, MolarMass("AgCl"), 1e-9)
}

func TestMolarMassUnknown(Te *testing.T) {
	o := DefaultOptions()
	for _, f := range []string{"Xx", "", "??", "xyz"} {
		m, err := o.MolarMass(f)
		require.Error(Te, err, f)
		assert.True(Te, errors.Is(err, ErrUnknownMolarMass))
		var e Error
		require.True(Te, errors.As(err, &e))
		assert.False(Te, e.Critical())
		assert.Equal(Te, SourceFallback, m.Source)
		assert.Equal(Te, DefaultFallbackMass, m.Value)
		assert.Contains(Te, m.Warning(f), "unknown")
	}
	assert.Equal(Te, DefaultFallbackMass, MolarMass("Qq3"))

	//partially known: the known part counts, the rest is reported.
	m, err := o.MolarMass("NaXx")
	require.NoError(Te, err)
	assert.InDelta(Te, 22.99, m.Value, 1e-9)
	assert.Equal(Te, []string{"Xx"}, m.Unknown)
	assert.Contains(Te, m.Warning("NaXx"), "Xx")

	o.FallbackMass = 50
	m, _ = o.MolarMass("Xx")
	assert.Equal(Te, 50.0, m.Value)
}

const compoundsYAML = `
- formula: C₆H₁₂O₆
  name: glucose
  molar_mass: 180.16
- formula: H2O(g)
  name: steam
  molar_mass: 18.015
`

func TestLoadCompounds(Te *testing.T) {
	C, err := LoadCompounds(strings.NewReader(compoundsYAML))
	require.NoError(Te, err)
	assert.Equal(Te, 2, C.Len())
	g, ok := C.Lookup("C6H12O6")
	require.True(Te, ok)
	assert.Equal(Te, "glucose", g.Name)
	assert.Equal(Te, "C6H12O6", g.Formula)
	w, ok := C.Lookup("H₂O")
	require.True(Te, ok)
	assert.Equal(Te, "g", w.Phase)

	merged := DefaultCompounds().Merge(C)
	assert.Equal(Te, DefaultCompounds().Len()+1, merged.Len())
	o := DefaultOptions()
	o.Compounds = merged
	m, err := o.MolarMass("H2O")
	require.NoError(Te, err)
	assert.Equal(Te, 18.015, m.Value)
	m, err = o.MolarMass("C₆H₁₂O₆")
	require.NoError(Te, err)
	assert.Equal(Te, SourceTable, m.Source)
	assert.Equal(Te, 180.16, m.Value)

	list := merged.List()
	for i := 1; i < len(list); i++ {
		assert.Less(Te, list[i-1].Formula, list[i].Formula)
	}

	empty, err := LoadCompounds(strings.NewReader(""))
	require.NoError(Te, err)
	assert.Equal(Te, 0, empty.Len())
}

func TestLoadCompoundsInvalid(Te *testing.T) {
	bad := []string{
		"- formula: H2O\n  molar_mass: 0\n",
		"- formula: ''\n  molar_mass: 10\n",
		"- formula: [oops\n",
	}
	for _, b := range bad {
		_, err := LoadCompounds(strings.NewReader(b))
		assert.Error(Te, err, b)
	}
}

func TestAtomicMass(Te *testing.T) {
	m, ok := AtomicMass("Cl")
	require.True(Te, ok)
	assert.InDelta(Te, 35.45, m, 0.01)
	_, ok = AtomicMass("Qq")
	assert.False(Te, ok)
	assert.True(Te, KnownElement("Ag"))
	assert.False(Te, KnownElement("ag"))
}

//totalMass works with any resolver, which lets callers plug their own tables.
func totalMass(r MassResolver, formulas ...string) float64 {
	var t float64
	for _, f := range formulas {
		m, _ := r.MolarMass(f)
		t += m.Value
	}
	return t
}

func TestMassResolver(Te *testing.T) {
	assert.InDelta(Te, 18.02+32.00, totalMass(DefaultOptions(), "H2O", "O2"), 1e-9)
	var ms Masser = balanced(Te, "H2 + O2 -> H2O")
	assert.Equal(Te, []float64{2.02, 32.00, 18.02}, ms.Masses())
}
