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

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"

	"github.com/wwaites/linkedspatialindex/internal/config"
	"github.com/wwaites/linkedspatialindex/internal/httpapi"
	"github.com/wwaites/linkedspatialindex/internal/manager"
	"github.com/wwaites/linkedspatialindex/internal/obs"
)

// runServe wires the configured service together and blocks until it is
// told to shut down.
func runServe(cfg config.Service) error {
	log := obs.NewLogger(cfg.LogLevel)
	registry := prometheus.NewRegistry()
	metrics := obs.NewMetrics(registry)

	mgr := manager.New(cfg.Directory, afero.NewOsFs(), metrics, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("starting index manager: %w", err)
	}
	defer mgr.Close()

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("metrics server failed")
			}
		}()
	}

	router := httpapi.NewRouter(mgr, metrics, log)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return httpapi.Serve(addr, router, log)
}
