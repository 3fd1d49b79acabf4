// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exports plugin counters for Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	culled        *prometheus.CounterVec
	fullUpdates   prometheus.Counter
	toggles       *prometheus.CounterVec
	checkTransmit prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		culled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hideplayers_culled_entities_total",
			Help: "Pawn bits cleared from transmit sets",
		}, []string{"reason"}),
		fullUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "hideplayers_full_updates_total",
			Help: "Forced full updates after observer mode transitions",
		}),
		toggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hideplayers_toggles_total",
			Help: "Hide command toggles by resulting state",
		}, []string{"state"}),
		checkTransmit: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hideplayers_check_transmit_seconds",
			Help:    "Time spent in the CheckTransmit post-hook",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005},
		}),
	}
}

// Culled records bits cleared in one CheckTransmit call.
func (m *Metrics) Culled(dead, policy int, took time.Duration) {
	if m == nil {
		return
	}
	m.culled.WithLabelValues("dead").Add(float64(dead))
	m.culled.WithLabelValues("policy").Add(float64(policy))
	m.checkTransmit.Observe(took.Seconds())
}

func (m *Metrics) FullUpdate() {
	if m == nil {
		return
	}
	m.fullUpdates.Inc()
}

func (m *Metrics) Toggle(enabled bool) {
	if m == nil {
		return
	}
	state := "off"
	if enabled {
		state = "on"
	}
	m.toggles.WithLabelValues(state).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves /metrics.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return r
}
