/*
 * server.go, part of gostoich.
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

package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/history"
	"github.com/rmera/gostoich/stoichjson"
)

//Request bodies larger than this are rejected.
const maxBody = 1 << 20

//History listings return at most this many records.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

//Handler serves the gostoich HTTP API. The zero value uses the default options,
//keeps no history and registers its metrics in a new registry.
type Handler struct {
	Options  *stoich.Options      //nil means stoich.DefaultOptions()
	History  history.Store        //optional
	Registry *prometheus.Registry //nil means a new registry
	once     sync.Once
	metrics  *metrics
}

//New returns a Handler that uses o for all calculations and records them in store,
//if not nil. Metrics are registered in a new registry.
func New(o *stoich.Options, store history.Store) *Handler {
	reg := prometheus.NewRegistry()
	return &Handler{Options: o, History: store, Registry: reg, metrics: newMetrics(reg)}
}

//setup builds the metrics on first use, so a zero Handler works too.
func (h *Handler) setup() {
	h.once.Do(func() {
		if h.metrics != nil {
			return
		}
		if h.Registry == nil {
			h.Registry = prometheus.NewRegistry()
		}
		h.metrics = newMetrics(h.Registry)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	w.Header().Set("Access-Control-Allow-Origin", "*")
	rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
	route := h.route(rec, r)
	h.metrics.count(route, rec.code)
}

//route dispatches r and returns the route label for the metrics.
func (h *Handler) route(w *statusRecorder, r *http.Request) string {
	path := strings.TrimSuffix(r.URL.Path, "/")
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return "options"
	}
	switch {
	case path == "/api/health":
		if !allow(w, r, http.MethodGet) {
			return "health"
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return "health"
	case path == "/balance":
		if allow(w, r, http.MethodPost) {
			h.handleBalance(w, r)
		}
		return "balance"
	case path == "/stoichiometry", path == "/api/calc/stoich":
		if allow(w, r, http.MethodPost) {
			h.handleStoich(w, r)
		}
		return "stoichiometry"
	case path == "/metrics":
		h.metrics.handler.ServeHTTP(w, r)
		return "metrics"
	case path == "/history" || strings.HasPrefix(path, "/history/"):
		if h.History == nil {
			writeError(w, http.StatusNotFound, "history not configured")
			return "history"
		}
		if allow(w, r, http.MethodGet) {
			h.handleHistory(w, r, strings.TrimPrefix(strings.TrimPrefix(path, "/history"), "/"))
		}
		return "history"
	}
	writeError(w, http.StatusNotFound, "not found")
	return "unknown"
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (h *Handler) options() *stoich.Options {
	if h.Options == nil {
		return stoich.DefaultOptions()
	}
	return h.Options
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	var req stoichjson.BalanceRequest
	if jerr := stoichjson.Decode(http.MaxBytesReader(w, r.Body, maxBody), &req); jerr != nil {
		writeJSON(w, http.StatusBadRequest, jerr)
		return
	}
	start := time.Now()
	o := h.options()
	R, err := stoich.ParseReaction(req.Reaction, o)
	if err == nil {
		R, err = stoich.Balance(R, o)
	}
	h.metrics.calcSeconds.WithLabelValues("balance").Observe(time.Since(start).Seconds())
	resp := stoichjson.FromReaction(req.Reaction, R, err)
	status := http.StatusOK
	if err != nil {
		h.metrics.balanceFailures.Inc()
		status = http.StatusUnprocessableEntity
	}
	h.record(r.Context(), history.KindBalance, req.Reaction, resp.Equation, resp.Balanced, resp)
	writeJSON(w, status, resp)
}

func (h *Handler) handleStoich(w http.ResponseWriter, r *http.Request) {
	var req stoichjson.StoichRequest
	if jerr := stoichjson.Decode(http.MaxBytesReader(w, r.Body, maxBody), &req); jerr != nil {
		writeJSON(w, http.StatusBadRequest, jerr)
		return
	}
	start := time.Now()
	R, res, err := stoich.Calculate(req.Reaction, req.Entries(), req.Target, h.options())
	h.metrics.calcSeconds.WithLabelValues("stoichiometry").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, stoich.ErrUnbalanceable) {
			h.metrics.balanceFailures.Inc()
		}
		writeJSON(w, http.StatusUnprocessableEntity, stoichjson.NewError("process", "Calculate", err))
		return
	}
	resp := stoichjson.FromResult(R, res)
	h.record(r.Context(), history.KindStoich, req.Reaction, resp.Equation, R.Balanced, resp)
	writeJSON(w, http.StatusOK, resp)
}

//record saves a calculation in the history, if there is one. Failures are only logged.
func (h *Handler) record(ctx context.Context, kind, input, equation string, balanced bool, payload any) {
	if h.History == nil {
		return
	}
	rec, err := history.NewRecord(kind, input, equation, balanced, payload)
	if err == nil {
		err = h.History.Save(ctx, rec)
	}
	if err != nil {
		log.Printf("server: can't record %s calculation: %v", kind, err)
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request, id string) {
	if id != "" {
		rec, err := h.History.Get(r.Context(), id)
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		if err != nil {
			log.Printf("server: reading history: %v", err)
			writeError(w, http.StatusInternalServerError, "can't read history")
			return
		}
		writeJSON(w, http.StatusOK, rec)
		return
	}
	limit := defaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	recs, err := h.History.List(r.Context(), limit)
	if err != nil {
		log.Printf("server: listing history: %v", err)
		writeError(w, http.StatusInternalServerError, "can't read history")
		return
	}
	if recs == nil {
		recs = []*history.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": recs})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = stoichjson.Send(w, payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

//ListenAndServe serves h at addr until ctx is cancelled, then shuts the server down.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		log.Printf("gostoich listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
