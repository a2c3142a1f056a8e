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

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/wwaites/linkedspatialindex/internal/lsierr"
)

// message is the {"message": ...} envelope used by every error response
// and by the provision and reset success responses; successful searches
// answer with a JSON array or a negotiated RDF closure instead.
type message struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(message{Message: text})
}

// writeError maps a kind-tagged error onto its HTTP status and writes the
// {"message": ...} body, regardless of whether the error originated in
// this package or bubbled up from the query/ingest/manager layers.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch lsierr.KindOf(err) {
	case lsierr.BadRequest:
		status = http.StatusBadRequest
	case lsierr.NotFound:
		status = http.StatusNotFound
	case lsierr.NotAcceptable:
		status = http.StatusNotAcceptable
	}
	writeMessage(w, status, err.Error())
}
