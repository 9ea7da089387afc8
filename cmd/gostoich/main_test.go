/*
 * main_test.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/batch"
	"github.com/rmera/gostoich/stoichjson"
)

func run(Te *testing.T, args ...string) (string, string, error) {
	Te.Helper()
	cmd := newRootCmd(viper.New())
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errb.String(), err
}

func TestParseMasses(Te *testing.T) {
	e, err := parseMasses([]string{"H2=4", "O2 = 32.5g", "Ag=10.0"})
	require.NoError(Te, err)
	assert.Equal(Te, []stoich.Entry{{Compound: "H2", Mass: 4}, {Compound: "O2", Mass: 32.5}, {Compound: "Ag", Mass: 10}}, e)
	for _, bad := range []string{"H2", "=4", "H2=four"} {
		_, err := parseMasses([]string{bad})
		assert.Error(Te, err, bad)
	}
}

func TestBalanceCmd(Te *testing.T) {
	out, _, err := run(Te, "balance", "KMnO4 + HCl -> KCl + MnCl2 + H2O + Cl2")
	require.NoError(Te, err)
	assert.Equal(Te, "2KMnO₄ + 16HCl → 2KCl + 2MnCl₂ + 8H₂O + 5Cl₂\n", out)

	out, _, err = run(Te, "balance", "--json", "N2 + H2", "=>", "NH3")
	require.NoError(Te, err)
	var resp stoichjson.BalanceResponse
	require.NoError(Te, json.Unmarshal([]byte(out), &resp))
	assert.True(Te, resp.Balanced)

	_, _, err = run(Te, "balance", "H2 -> O2")
	assert.ErrorIs(Te, err, stoich.ErrUnbalanceable)

	_, errs, err := run(Te, "balance", "H2 + O2")
	require.NoError(Te, err)
	assert.Contains(Te, errs, "warning:")
	_, _, err = run(Te, "--strict", "balance", "H2 + O2")
	assert.ErrorIs(Te, err, stoich.ErrMalformedReaction)
}

func TestMassCmd(Te *testing.T) {
	out, errs, err := run(Te, "mass", "H₂O", "Ca3(PO4)2", "Qq")
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(Te, lines, 3)
	assert.True(Te, strings.HasPrefix(lines[0], "H2O\t"))
	assert.Contains(Te, lines[2], "(fallback)")
	assert.Contains(Te, errs, "Qq")

	_, _, err = run(Te, "--strict", "mass", "Qq")
	assert.ErrorIs(Te, err, stoich.ErrUnknownMolarMass)
}

func TestStoichCmd(Te *testing.T) {
	out, _, err := run(Te, "stoich", "H2 + O2 -> H2O", "-m", "H2=4", "--mass", "O2=32")
	require.NoError(Te, err)
	assert.Contains(Te, out, "Limiting reagent: H2")
	assert.Contains(Te, out, "Theoretical yield: ")
	assert.Contains(Te, out, "Excess O2: ")

	out, _, err = run(Te, "stoich", "--json", "C + O2 -> CO2", "--mass", "C=12", "--target", "CO2")
	require.NoError(Te, err)
	var resp stoichjson.StoichResponse
	require.NoError(Te, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(Te, 44.0, resp.TheoreticalYield, 0.1)

	_, _, err = run(Te, "stoich", "C + O2 -> CO2", "--mass", "C")
	assert.Error(Te, err)
	_, _, err = run(Te, "stoich", "C + O2 -> CO2")
	assert.ErrorIs(Te, err, stoich.ErrNoReactantData)
}

func TestBatchCmd(Te *testing.T) {
	dir := Te.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(Te, os.WriteFile(in, []byte("H2 + O2 -> H2O\nH2 -> O2\n"), 0o644))
	outFile := filepath.Join(dir, "out.jsonl.gz")
	_, errs, err := run(Te, "batch", in, "--out", outFile, "--cpus", "2")
	require.NoError(Te, err)
	assert.Contains(Te, errs, "2 reactions, 1 balanced, 1 failed")

	r, err := batch.Open(outFile)
	require.NoError(Te, err)
	defer r.Close()
	dec := json.NewDecoder(r)
	n := 0
	for dec.More() {
		var b stoichjson.BalanceResponse
		require.NoError(Te, dec.Decode(&b))
		n++
	}
	assert.Equal(Te, 2, n)
}

func TestCompoundsFile(Te *testing.T) {
	file := filepath.Join(Te.TempDir(), "extra.yaml")
	require.NoError(Te, os.WriteFile(file, []byte("- formula: Qq2\n  name: quasium\n  molar_mass: 77.7\n"), 0o644))
	out, _, err := run(Te, "--compounds", file, "mass", "Qq2")
	require.NoError(Te, err)
	assert.Contains(Te, out, "77.700 g/mol\t(table)")

	v := viper.New()
	v.Set("compounds", filepath.Join(Te.TempDir(), "missing.yaml"))
	_, err = loadOptions(v)
	assert.Error(Te, err)
}

func TestConfigFile(Te *testing.T) {
	file := filepath.Join(Te.TempDir(), "gostoich.yaml")
	require.NoError(Te, os.WriteFile(file, []byte("strict: true\nhistory: memory\n"), 0o644))
	_, _, err := run(Te, "--config", file, "balance", "H2 + O2")
	assert.ErrorIs(Te, err, stoich.ErrMalformedReaction)

	v := viper.New()
	Te.Setenv("PORT", "8123")
	require.NoError(Te, initConfig(v))
	assert.Equal(Te, ":8123", v.GetString("addr"))
	Te.Setenv("GOSTOICH_ADDR", "127.0.0.1:9000")
	assert.Equal(Te, "127.0.0.1:9000", v.GetString("addr"))
}
