package stoich

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanced(Te *testing.T, input string) *Reaction {
	Te.Helper()
	R, err := ParseReaction(input, nil)
	require.NoError(Te, err, input)
	B, err := Balance(R, nil)
	require.NoError(Te, err, input)
	require.True(Te, B.Balanced, input)
	return B
}

func TestBalanceFixtures(Te *testing.T) {
	cases := []struct {
		input string
		want  []int
	}{
		{"H2 + O2 -> H2O", []int{2, 1, 2}},
		{"N2 + H2 -> NH3", []int{1, 3, 2}},
		{"C + O2 -> CO2", []int{1, 1, 1}},
		{"2 Ag + Cl2 -> 2 AgCl", []int{2, 1, 2}},
		{"Fe + O2 -> Fe2O3", []int{4, 3, 2}},
		{"CH4 + O2 → CO2 + H2O", []int{1, 2, 1, 2}},
		{"C3H8 + O2 ⟶ CO2 + H2O", []int{1, 5, 3, 4}},
		{"C6H12O6 + O2 => CO2 + H2O", []int{1, 6, 6, 6}},
		{"Al + HCl -> AlCl3 + H2", []int{2, 6, 2, 3}},
		{"Ca(OH)2 + H3PO4 -> Ca3(PO4)2 + H2O", []int{3, 2, 1, 6}},
		{"KMnO4 + HCl -> KCl + MnCl2 + H2O + Cl2", []int{2, 16, 2, 2, 8, 5}},
		{"C8H18 + O2 -> CO2 + H2O", []int{2, 25, 16, 18}},
		{"H₂ + O₂ → H₂O", []int{2, 1, 2}},
		{"Fe2O3(s) + CO(g) -> Fe(s) + CO2(g)", []int{1, 3, 2, 3}},
	}
	for _, c := range cases {
		B := balanced(Te, c.input)
		assert.Equal(Te, c.want, B.Coefficients(), c.input)
	}
}

//Every balanced reaction conserves all elements, and its coefficients have no common factor.
func TestBalanceInvariants(Te *testing.T) {
	inputs := []string{
		"H2 + O2 -> H2O",
		"NaOH + H2SO4 -> Na2SO4 + H2O",
		"Cu + HNO3 -> Cu(NO3)2 + NO + H2O",
		"CaCO3 -> CaO + CO2",
		"Al2(SO4)3 + Ca(OH)2 -> Al(OH)3 + CaSO4",
		"C2H5OH + O2 -> CO2 + H2O",
		"K4Fe(CN)6 + KMnO4 + H2SO4 -> KHSO4 + Fe2(SO4)3 + MnSO4 + HNO3 + CO2 + H2O",
	}
	for _, in := range inputs {
		B := balanced(Te, in)
		for _, el := range B.Elements() {
			var left, right int
			for _, s := range B.Reactants {
				left += s.Coefficient * s.Composition()[el]
			}
			for _, s := range B.Products {
				right += s.Coefficient * s.Composition()[el]
			}
			assert.Equal(Te, left, right, fmt.Sprintf("%s in %s", el, B.String()))
		}
		coefs := make([]int64, 0)
		for _, c := range B.Coefficients() {
			assert.Greater(Te, c, 0)
			coefs = append(coefs, int64(c))
		}
		assert.Equal(Te, int64(1), GCDMany(coefs), B.String())
	}
}

func TestBalanceDoesNotModifyInput(Te *testing.T) {
	R, err := ParseReaction("3 H2 + 3 O2 -> 5 H2O", nil)
	require.NoError(Te, err)
	B, err := Balance(R, nil)
	require.NoError(Te, err)
	assert.Equal(Te, []int{3, 3, 5}, R.Coefficients())
	assert.False(Te, R.Balanced)
	assert.Equal(Te, []int{2, 1, 2}, B.Coefficients())
}

func TestBalanceFailures(Te *testing.T) {
	inputs := []string{
		"H2 -> O2",
		"NaCl -> KBr",
		"H2O ->",
		"-> H2O",
		"?? -> !!",
		"H2 + O2 -> H2O + H2O2", //more than one independent solution
	}
	for _, in := range inputs {
		R, err := ParseReaction(in, nil)
		require.NoError(Te, err, in)
		B, err := Balance(R, nil)
		require.Error(Te, err, in)
		assert.True(Te, errors.Is(err, ErrUnbalanceable), in)
		assert.Equal(Te, Unbalanceable, KindOf(err))
		assert.False(Te, B.Balanced, in)
		assert.Equal(Te, R.Coefficients(), B.Coefficients(), in)
	}
}

func TestConservationMatrix(Te *testing.T) {
	R, err := ParseReaction("H2 + O2 -> H2O", nil)
	require.NoError(Te, err)
	els := R.Elements()
	assert.Equal(Te, []string{"H", "O"}, els)
	A := conservationMatrix(R, els)
	r, c := A.Dims()
	assert.Equal(Te, 2, r)
	assert.Equal(Te, 3, c)
	assert.Equal(Te, []float64{2, 0, -2}, A.RawRowView(0))
	assert.Equal(Te, []float64{0, 2, -1}, A.RawRowView(1))
	x, ok := solveFixed(A, 2, DefaultOptions())
	require.True(Te, ok)
	assert.InDeltaSlice(Te, []float64{1, 0.5, 1}, x, 1e-12)
	res, err := residual(A, x)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, res, 1e-12)
}
