/*
 * history.go, part of gostoich.
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
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//Record kinds.
const (
	KindBalance = "balance"
	KindStoich  = "stoichiometry"
)

//ErrNotFound is returned when a record doesn't exist.
var ErrNotFound = errors.New("history: record not found")

//Record is one stored calculation.
type Record struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Input     string          `json:"input"`    //the reaction as given
	Equation  string          `json:"equation"` //the balanced (or not) equation
	Balanced  bool            `json:"balanced"`
	Payload   json.RawMessage `json:"payload,omitempty"` //the full response
	CreatedAt time.Time       `json:"created_at"`
}

//NewRecord returns a record with a new random ID and the current UTC time.
//payload is marshaled to JSON.
func NewRecord(kind, input, equation string, balanced bool, payload any) (*Record, error) {
	r := &Record{ID: uuid.NewString(), Kind: kind, Input: input, Equation: equation, Balanced: balanced, CreatedAt: time.Now().UTC()}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("history: marshaling payload: %w", err)
		}
		r.Payload = b
	}
	return r, nil
}

//Store saves and retrieves records.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	//List returns the most recent records first. limit <= 0 means all of them.
	List(ctx context.Context, limit int) ([]*Record, error)
	Close() error
}

//Memory is a Store that keeps the records in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*Record
}

//NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

func (M *Memory) Save(ctx context.Context, r *Record) error {
	if r == nil || r.ID == "" {
		return errors.New("history: record without ID")
	}
	c := *r
	M.mu.Lock()
	defer M.mu.Unlock()
	M.records[r.ID] = &c
	return nil
}

func (M *Memory) Get(ctx context.Context, id string) (*Record, error) {
	M.mu.RLock()
	defer M.mu.RUnlock()
	r, ok := M.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r
	return &c, nil
}

func (M *Memory) List(ctx context.Context, limit int) ([]*Record, error) {
	M.mu.RLock()
	ret := make([]*Record, 0, len(M.records))
	for _, v := range M.records {
		c := *v
		ret = append(ret, &c)
	}
	M.mu.RUnlock()
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].CreatedAt.Equal(ret[j].CreatedAt) {
			return ret[i].ID > ret[j].ID
		}
		return ret[i].CreatedAt.After(ret[j].CreatedAt)
	})
	if limit > 0 && limit < len(ret) {
		ret = ret[:limit]
	}
	return ret, nil
}

func (M *Memory) Close() error { return nil }

//Open returns the store described by uri:
//"" or "memory" for a Memory store, "postgres://..." or "postgresql://..." for PostgreSQL, and
//"sqlite:<path>", "file:<path>", or any path, for SQLite.
func Open(ctx context.Context, uri string) (Store, error) {
	switch {
	case uri == "" || uri == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return OpenPostgres(ctx, uri)
	case strings.HasPrefix(uri, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(uri, "sqlite:"))
	}
	return OpenSQLite(ctx, uri)
}
