/*
Copyright © 2026 the LSI authors.
This file is part of the Linked Spatial Index.

The Linked Spatial Index is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Linked Spatial Index is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Linked Spatial Index.  If not, see <http://www.gnu.org/licenses/>.
*/

package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of Prometheus collectors the index manager and
// query path update. A single instance is registered once at service
// startup and threaded through the manager.
type Metrics struct {
	IndexesOpen    prometheus.Gauge
	ProvisionTotal prometheus.Counter
	ResetTotal     prometheus.Counter
	QueryDuration  *prometheus.HistogramVec
}

// NewMetrics builds and registers a Metrics set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IndexesOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsi_indexes_open",
			Help: "Number of named indexes currently open.",
		}),
		ProvisionTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsi_provision_total",
			Help: "Total number of index provision requests handled.",
		}),
		ResetTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsi_reset_total",
			Help: "Total number of index reset requests handled.",
		}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lsi_query_duration_seconds",
			Help:    "Search request latency in seconds, by predicate.",
			Buckets: prometheus.DefBuckets,
		}, []string{"predicate"}),
	}
	reg.MustRegister(m.IndexesOpen, m.ProvisionTotal, m.ResetTotal, m.QueryDuration)
	return m
}
