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

// Package config holds the service-level configuration (the `serve`
// command's settings) and the per-index on-disk configuration fixed by
// spec.md §6.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Service is the top-level service configuration, loadable from a YAML
// file (environment variables are expanded first, following the
// teacher's config-file idiom) and overridable by CLI flags bound
// through viper in cmd/lsi.
type Service struct {
	Directory   string `yaml:"directory"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"logLevel"`
	MetricsAddr string `yaml:"metricsAddr"`
}

// DefaultService returns the service configuration used when no config
// file or flags override it.
func DefaultService() Service {
	return Service{
		Directory:   "./",
		Host:        "localhost",
		Port:        4000,
		LogLevel:    "info",
		MetricsAddr: ":9090",
	}
}

// ReadServiceFile loads a YAML service config file, expanding
// environment variables in it first.
func ReadServiceFile(path string) (Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Service{}, fmt.Errorf("reading service config %s: %w", path, err)
	}
	raw = []byte(os.ExpandEnv(string(raw)))

	cfg := DefaultService()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Service{}, fmt.Errorf("parsing service config %s: %w", path, err)
	}
	return cfg, nil
}
