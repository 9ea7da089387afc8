/*
 * history_test.go, part of gostoich.
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

package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(Te *testing.T, s Store) {
	Te.Helper()
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i, in := range []string{"H2 + O2 -> H2O", "N2 + H2 -> NH3", "H2 -> O2"} {
		r, err := NewRecord(KindBalance, in, in, i != 2, map[string]any{"n": i})
		require.NoError(Te, err)
		r.CreatedAt = t0.Add(time.Duration(i) * time.Minute)
		require.NoError(Te, s.Save(ctx, r))
		ids = append(ids, r.ID)
	}
	r, err := s.Get(ctx, ids[1])
	require.NoError(Te, err)
	assert.Equal(Te, "N2 + H2 -> NH3", r.Input)
	assert.True(Te, r.Balanced)
	assert.JSONEq(Te, `{"n":1}`, string(r.Payload))
	assert.True(Te, t0.Add(time.Minute).Equal(r.CreatedAt))

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(Te, err, ErrNotFound)

	all, err := s.List(ctx, 0)
	require.NoError(Te, err)
	require.Len(Te, all, 3)
	assert.Equal(Te, ids[2], all[0].ID)
	assert.False(Te, all[0].Balanced)
	assert.Equal(Te, ids[0], all[2].ID)

	two, err := s.List(ctx, 2)
	require.NoError(Te, err)
	assert.Len(Te, two, 2)

	assert.Error(Te, s.Save(ctx, &Record{}))
}

func TestNewRecord(Te *testing.T) {
	a, err := NewRecord(KindStoich, "C + O2 -> CO2", "C + O₂ → CO₂", true, nil)
	require.NoError(Te, err)
	b, err := NewRecord(KindStoich, "C + O2 -> CO2", "C + O₂ → CO₂", true, nil)
	require.NoError(Te, err)
	assert.NotEqual(Te, a.ID, b.ID)
	assert.Len(Te, a.ID, 36)
	assert.Nil(Te, a.Payload)
	assert.Equal(Te, time.UTC, a.CreatedAt.Location())
	_, err = NewRecord(KindStoich, "", "", false, func() {})
	assert.Error(Te, err)
}

func TestMemory(Te *testing.T) {
	m := NewMemory()
	exerciseStore(Te, m)
	assert.NoError(Te, m.Close())
}

func TestSQLite(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "sub", "history.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(Te, err)
	exerciseStore(Te, s)
	require.NoError(Te, s.Close())

	//the records survive reopening
	s, err = OpenSQLite(context.Background(), path)
	require.NoError(Te, err)
	defer s.Close()
	all, err := s.List(context.Background(), -1)
	require.NoError(Te, err)
	assert.Len(Te, all, 3)
}

func TestPostgres(Te *testing.T) {
	dsn := os.Getenv("GOSTOICH_TEST_POSTGRES")
	if dsn == "" {
		Te.Skip("GOSTOICH_TEST_POSTGRES not set")
	}
	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(Te, err)
	defer s.Close()
	_, err = s.db.Exec(`DELETE FROM calculations`)
	require.NoError(Te, err)
	exerciseStore(Te, s)
}

func TestQueryRewrite(Te *testing.T) {
	pg := &SQL{dialect: "postgres"}
	assert.Equal(Te, "SELECT a FROM t WHERE id = $1 AND b = $2", pg.query("SELECT a FROM t WHERE id = ? AND b = ?"))
	lite := &SQL{dialect: "sqlite"}
	assert.Equal(Te, "WHERE id = ?", lite.query("WHERE id = ?"))
}

func TestOpen(Te *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "memory")
	require.NoError(Te, err)
	assert.IsType(Te, &Memory{}, s)

	dir := Te.TempDir()
	for _, uri := range []string{"sqlite:" + filepath.Join(dir, "a.db"), filepath.Join(dir, "b.db")} {
		s, err := Open(ctx, uri)
		require.NoError(Te, err, uri)
		assert.IsType(Te, &SQL{}, s)
		require.NoError(Te, s.Close())
	}
	_, err = os.Stat(filepath.Join(dir, "a.db"))
	assert.NoError(Te, err)
}
