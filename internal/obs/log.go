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

// Package obs is the service's observability surface: a logrus logger
// configured from the service's log level, and the Prometheus metrics
// the index manager and query path update.
package obs

import (
	"github.com/sirupsen/logrus"
)

// NewLogger builds the service's root logger at the given level
// ("debug", "info", "warn", "error"; an unrecognised value falls back
// to info), formatted as JSON so log aggregation does not need to parse
// a free-text line.
func NewLogger(level string) logrus.FieldLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
