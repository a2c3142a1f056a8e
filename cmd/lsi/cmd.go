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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wwaites/linkedspatialindex/internal/config"
)

// Version is the service's release version, set at build time in
// production builds via -ldflags.
var Version = "dev"

// Root is the lsi command tree: `lsi serve` and `lsi version`,
// configuration bound through viper so every flag below can equally be
// set by an LSI_-prefixed environment variable or a --config YAML file.
var Root = &cobra.Command{
	Use:   "lsi",
	Short: "Linked Spatial Index service",
	Long: `lsi serves a Linked Spatial Index: it ingests RDF quads, extracts
geometries, indexes them in a persistent R-tree, and answers nearest/
intersects/contains spatial queries filtered by RDF type or text.

Configuration can be set with command-line flags, a YAML config file
(--config), or LSI_-prefixed environment variables.`,
	DisableAutoGenTag: true,
}

var v = viper.New()

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the LSI service",
	Long:  "serve starts the HTTP API, opens any indexes already on disk, and watches for more.",
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultService()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			fileCfg, err := config.ReadServiceFile(path)
			if err != nil {
				return err
			}
			cfg = fileCfg
		}
		if v.IsSet("directory") {
			cfg.Directory = v.GetString("directory")
		}
		if v.IsSet("host") {
			cfg.Host = v.GetString("host")
		}
		if v.IsSet("port") {
			cfg.Port = v.GetInt("port")
		}
		if v.IsSet("log-level") {
			cfg.LogLevel = v.GetString("log-level")
		}
		if v.IsSet("metrics-addr") {
			cfg.MetricsAddr = v.GetString("metrics-addr")
		}
		return runServe(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the version number",
	DisableAutoGenTag: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lsi v%s\n", Version)
	},
}

func init() {
	defaults := config.DefaultService()

	serveCmd.Flags().String("config", "", "path to a YAML service config file")
	serveCmd.Flags().String("directory", defaults.Directory, "data directory for index files")
	serveCmd.Flags().String("host", defaults.Host, "address to listen on")
	serveCmd.Flags().Int("port", defaults.Port, "port to listen on")
	serveCmd.Flags().String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	serveCmd.Flags().String("metrics-addr", defaults.MetricsAddr, "address to serve Prometheus metrics on")

	v.SetEnvPrefix("LSI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(serveCmd.Flags()) // flags are all optional; a bind error here would be a programming mistake, not a user one

	Root.AddCommand(serveCmd)
	Root.AddCommand(versionCmd)
}
