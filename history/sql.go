/*
 * sql.go, part of gostoich.
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
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

const schema = `CREATE TABLE IF NOT EXISTS calculations (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	input TEXT NOT NULL,
	equation TEXT NOT NULL,
	balanced INTEGER NOT NULL,
	payload TEXT NOT NULL,
	created_at BIGINT NOT NULL
)`

//SQL is a Store backed by a database/sql database.
type SQL struct {
	db      *sql.DB
	dialect string
}

//OpenSQLite opens (creating it if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		path = "gostoich.db"
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("history: creating directories: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: opening sqlite: %w", err)
	}
	//SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return newSQL(ctx, db, "sqlite")
}

//OpenPostgres connects to the PostgreSQL database at dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping postgres: %w", err)
	}
	return newSQL(ctx, db, "postgres")
}

func newSQL(ctx context.Context, db *sql.DB, dialect string) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: creating table: %w", err)
	}
	return &SQL{db: db, dialect: dialect}, nil
}

//query rewrites the '?' placeholders of q as $1, $2... for PostgreSQL.
func (S *SQL) query(q string) string {
	if S.dialect != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (S *SQL) Save(ctx context.Context, r *Record) error {
	if r == nil || r.ID == "" {
		return errors.New("history: record without ID")
	}
	balanced := 0
	if r.Balanced {
		balanced = 1
	}
	payload := string(r.Payload)
	if payload == "" {
		payload = "null"
	}
	_, err := S.db.ExecContext(ctx, S.query(`INSERT INTO calculations (id, kind, input, equation, balanced, payload, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		r.ID, r.Kind, r.Input, r.Equation, balanced, payload, r.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("history: saving %s: %w", r.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	r := new(Record)
	var balanced int
	var payload string
	var created int64
	if err := s.Scan(&r.ID, &r.Kind, &r.Input, &r.Equation, &balanced, &payload, &created); err != nil {
		return nil, err
	}
	r.Balanced = balanced != 0
	if payload != "null" {
		r.Payload = []byte(payload)
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}

const columns = `id, kind, input, equation, balanced, payload, created_at`

func (S *SQL) Get(ctx context.Context, id string) (*Record, error) {
	row := S.db.QueryRowContext(ctx, S.query(`SELECT `+columns+` FROM calculations WHERE id = ?`), id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: reading %s: %w", id, err)
	}
	return r, nil
}

func (S *SQL) List(ctx context.Context, limit int) ([]*Record, error) {
	q := `SELECT ` + columns + ` FROM calculations ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := S.db.QueryContext(ctx, S.query(q), args...)
	if err != nil {
		return nil, fmt.Errorf("history: listing: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var ret []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

func (S *SQL) Close() error {
	return S.db.Close()
}
