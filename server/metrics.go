/*
 * metrics.go, part of gostoich.
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
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	requests        *prometheus.CounterVec
	balanceFailures prometheus.Counter
	calcSeconds     *prometheus.HistogramVec
	handler         http.Handler
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gostoich_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		balanceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gostoich_balance_failures_total",
			Help: "Reactions that could not be balanced.",
		}),
		calcSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gostoich_calculation_seconds",
			Help:    "Time spent parsing, balancing and evaluating reactions.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"kind"}),
	}
	reg.MustRegister(m.requests, m.balanceFailures, m.calcSeconds)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

//statusRecorder keeps the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}

func (m *metrics) count(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
