package stoich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormula(Te *testing.T) {
	cases := []struct {
		formula string
		want    Composition
	}{
		{"H2O", Composition{"H": 2, "O": 1}},
		{"Ca(OH)2", Composition{"Ca": 1, "O": 2, "H": 2}},
		{"Al2(SO4)3", Composition{"Al": 2, "S": 3, "O": 12}},
		{"Mg3(PO4)2", Composition{"Mg": 3, "P": 2, "O": 8}},
		{"(NH4)2Cr2O7", Composition{"N": 2, "H": 8, "Cr": 2, "O": 7}},
		{"Cu(NH3)4(OH)2", Composition{"Cu": 1, "N": 4, "H": 14, "O": 2}},
		{"C12H22O11", Composition{"C": 12, "H": 22, "O": 11}},
		{"  Na Cl ", Composition{"Na": 1, "Cl": 1}},
		{"CO", Composition{"C": 1, "O": 1}},
		{"Co", Composition{"Co": 1}},
		{"Xx2", Composition{"Xx": 2}},
		{"", Composition{}},
	}
	for _, c := range cases {
		assert.Equal(Te, c.want, ParseFormula(c.formula), c.formula)
	}
}

func TestParseFormulaMalformed(Te *testing.T) {
	//unmatched closing parenthesis, the multiplier is consumed and ignored
	assert.Equal(Te, Composition{"H": 2, "O": 1}, ParseFormula("H2)3O"))
	//unclosed group counts once
	assert.Equal(Te, Composition{"Ca": 1, "O": 1, "H": 1}, ParseFormula("Ca(OH"))
	assert.Equal(Te, Composition{"H": 2}, ParseFormula("h2H2*!"))
	assert.Equal(Te, Composition{}, ParseFormula("))(("))
}

func TestSubscriptNormalization(Te *testing.T) {
	pairs := [][2]string{
		{"H₂O", "H2O"},
		{"Ca(OH)₂", "Ca(OH)2"},
		{"C₁₂H₂₂O₁₁", "C12H22O11"},
		{"Al₂(SO₄)₃", "Al2(SO4)3"},
	}
	for _, p := range pairs {
		assert.Equal(Te, ParseFormula(p[1]), ParseFormula(p[0]))
		assert.Equal(Te, p[1], Normalize(p[0]))
		assert.Equal(Te, p[0], Subscript(p[1]))
	}
}

//For formulas without groups, the atom count is the sum of the explicit or implied multipliers.
func TestCompositionAtoms(Te *testing.T) {
	cases := map[string]int{"H2O": 3, "C6H12O6": 24, "NaCl": 2, "KMnO4": 6, "O": 1, "HHe": 2}
	for f, n := range cases {
		assert.Equal(Te, n, ParseFormula(f).Atoms(), f)
	}
}

func TestCompositionString(Te *testing.T) {
	assert.Equal(Te, "C6H12O6", ParseFormula("C6H12O6").String())
	assert.Equal(Te, "C2H6O", ParseFormula("CH3CH2OH").String())
	assert.Equal(Te, "CaH2O2", ParseFormula("Ca(OH)2").String())
	assert.Equal(Te, "CCl4", ParseFormula("CCl4").String())
	assert.True(Te, ParseFormula("CH3CH2OH").Equal(ParseFormula("C2H5OH")))
	assert.False(Te, ParseFormula("CO").Equal(ParseFormula("Co")))
}

func TestSplitPhase(Te *testing.T) {
	cases := []struct{ in, formula, phase string }{
		{"H₂O(l)", "H2O", "l"},
		{"NaCl (aq)", "NaCl", "aq"},
		{"CO2(g)", "CO2", "g"},
		{"Fe(s)", "Fe", "s"},
		{"Ca(OH)2", "Ca(OH)2", ""},
		{"(s)", "(s)", ""},
	}
	for _, c := range cases {
		f, p := SplitPhase(c.in)
		assert.Equal(Te, c.formula, f, c.in)
		assert.Equal(Te, c.phase, p, c.in)
	}
	//the phase tag does not change the composition
	assert.Equal(Te, ParseFormula("NaCl"), ParseFormula("NaCl(aq)"))
}

func TestParseFormulaHugeCounts(Te *testing.T) {
	for _, f := range []string{
		"H9223372036854775808",
		"(H9999999999)9999999999",
		"((CH3)99999)99999",
		"H2147483647H2147483647",
		"O18446744073709551617",
	} {
		c := ParseFormula(f)
		assert.NotEmpty(Te, c, f)
		for el, n := range c {
			assert.GreaterOrEqual(Te, n, 0, f+" "+el)
			assert.LessOrEqual(Te, n, MaxCount, f+" "+el)
		}
	}
	assert.Equal(Te, Composition{"H": MaxCount}, ParseFormula("H9223372036854775808"))
	assert.Equal(Te, Composition{"H": MaxCount}, ParseFormula("(H9999999999)9999999999"))
	assert.Equal(Te, Composition{"C": MaxCount, "H": MaxCount}, ParseFormula("((CH3)99999)99999"))
	assert.Equal(Te, Composition{"C": 999 * 999, "H": 3 * 999 * 999}, ParseFormula("((CH3)999)999"))

	m, err := DefaultOptions().MolarMass("H9223372036854775808")
	assert.NoError(Te, err)
	assert.Equal(Te, SourceElements, m.Source)
	assert.Greater(Te, m.Value, 0.0)
}
