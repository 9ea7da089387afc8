package stoich

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReaction(Te *testing.T) {
	for _, in := range []string{"2 H₂ + O₂ → 2 H₂O", "2H2 + O2 -> 2H2O", "2H2+O2⟶2H2O", " 2 H2 +O2 => 2 H2O "} {
		R, err := ParseReaction(in, nil)
		require.NoError(Te, err, in)
		assert.False(Te, R.Balanced)
		assert.Empty(Te, R.Warnings, in)
		require.Len(Te, R.Reactants, 2)
		require.Len(Te, R.Products, 1)
		assert.Equal(Te, "H2", R.Reactants[0].Formula)
		assert.Equal(Te, 2, R.Reactants[0].Coefficient)
		assert.Equal(Te, "O2", R.Reactants[1].Formula)
		assert.Equal(Te, 1, R.Reactants[1].Coefficient)
		assert.Equal(Te, "H2O", R.Products[0].Formula)
		assert.Equal(Te, 18.02, R.Products[0].MolarMass)
		assert.Equal(Te, "2H2 + O2 -> 2H2O", R.String())
		assert.Equal(Te, "2H₂ + O₂ → 2H₂O", R.Pretty())
	}
}

func TestParseReactionDetails(Te *testing.T) {
	R, err := ParseReaction("CaCO3(s) + 2 HCl(aq) -> CaCl2(aq) + H2O(l) + CO2(g) +", nil)
	require.NoError(Te, err)
	require.Len(Te, R.Products, 3)
	assert.Equal(Te, "s", R.Reactants[0].Phase)
	assert.Equal(Te, "CaCO3", R.Reactants[0].Formula)
	assert.Equal(Te, SourceTable, R.Reactants[0].MassSource)
	assert.Equal(Te, "aq", R.Reactants[1].Phase)
	assert.Equal(Te, 2, R.Reactants[1].Coefficient)
	assert.Equal(Te, SourceElements, R.Products[0].MassSource)
	assert.Equal(Te, []string{"C", "Ca", "O", "Cl", "H"}, R.Elements())
	assert.Equal(Te, -1, R.Reactant("CaCl2"))
	assert.Equal(Te, 1, R.Reactant("HCl(aq)"))
	assert.Equal(Te, 2, R.Product("CO₂"))
	assert.Len(Te, R.Masses(), 5)
}

func TestParseReactionWithoutArrow(Te *testing.T) {
	R, err := ParseReaction("H2 + O2", nil)
	require.NoError(Te, err)
	require.Len(Te, R.Warnings, 1)
	assert.Equal(Te, "H2 + O2 -> H2O", R.String())

	_, err = ParseReaction("H2 + O2", StrictOptions())
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrMalformedReaction))
}

func TestParseReactionUnknownMass(Te *testing.T) {
	R, err := ParseReaction("Qq + O2 -> QqO2", nil)
	require.NoError(Te, err)
	assert.Len(Te, R.Warnings, 2) //Qq is unknown, and QqO2 is only partially known
	assert.Equal(Te, SourceFallback, R.Reactants[0].MassSource)
	assert.Equal(Te, DefaultFallbackMass, R.Reactants[0].MolarMass)

	_, err = ParseReaction("Qq + O2 -> QqO2", StrictOptions())
	require.Error(Te, err)
	assert.Equal(Te, UnknownMolarMass, KindOf(err))
}

func TestReactionConserved(Te *testing.T) {
	R, err := ParseReaction("2H2 + O2 -> 2H2O", nil)
	require.NoError(Te, err)
	assert.True(Te, R.Conserved())
	R.Products[0].Coefficient = 1
	assert.False(Te, R.Conserved())
	C := R.Copy()
	C.Products[0].Coefficient = 2
	assert.Equal(Te, 1, R.Products[0].Coefficient)
	assert.True(Te, C.Conserved())
}
