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

// Package httpapi is the LSI's HTTP surface: the three routes spec.md §6
// fixes (provision, reset, search), wired through go-chi and the index
// manager.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/wwaites/linkedspatialindex/internal/lsierr"
	"github.com/wwaites/linkedspatialindex/internal/manager"
	"github.com/wwaites/linkedspatialindex/internal/negotiate"
	"github.com/wwaites/linkedspatialindex/internal/obs"
	"github.com/wwaites/linkedspatialindex/internal/query"
	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

// closureCandidates is the fixed, ordered list of negotiable closure media
// types and the rdf.Format each corresponds to (spec.md §4.4).
var closureCandidates = []struct {
	mediaType string
	format    rdf.Format
}{
	{"text/turtle", rdf.FormatTurtle},
	{"application/n-triples", rdf.FormatNTriples},
	{"application/n-quads", rdf.FormatNQuads},
	{"application/rdf+xml", rdf.FormatRDFXML},
	{"application/json", rdf.FormatJSON},
}

// NewRouter builds the chi router backing the service, wiring every route
// against mgr.
func NewRouter(mgr *manager.Manager, metrics *obs.Metrics, log logrus.FieldLogger) *chi.Mux {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	h := &handlers{mgr: mgr, metrics: metrics, log: log}
	r.Get("/indexes", h.provision)
	r.Get("/indexes/{index}/reset", h.reset)
	r.Get("/indexes/{index}/search", h.search)
	return r
}

type handlers struct {
	mgr     *manager.Manager
	metrics *obs.Metrics
	log     logrus.FieldLogger
}

// provision implements `GET /indexes?id=<name>` (spec.md §6).
func (h *handlers) provision(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("id")
	if name == "" {
		writeError(w, lsierr.New(lsierr.BadRequest, "missing id parameter"))
		return
	}
	if err := h.mgr.Provision(name); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "provisioned "+name)
}

// reset implements `GET /indexes/<name>/reset`: it queues the reset and
// returns immediately, matching the original's fire-and-forget semantics.
func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")
	if _, ok := h.mgr.Search(name); !ok {
		writeError(w, lsierr.New(lsierr.NotFound, "no such index: "+name))
		return
	}
	go func() {
		if err := h.mgr.Reset(name); err != nil {
			h.log.WithError(err).WithField("index", name).Error("reset failed")
		}
	}()
	writeMessage(w, http.StatusAccepted, "queued reset of "+name)
}

// search implements `GET /indexes/<name>/search` (spec.md §6).
func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")
	fc, ok := h.mgr.Search(name)
	if !ok {
		writeError(w, lsierr.New(lsierr.NotFound, "no such index: "+name))
		return
	}

	q := r.URL.Query()
	predicate, err := query.ParsePredicate(q.Get("predicate"))
	if err != nil {
		writeError(w, err)
		return
	}
	operand, err := query.ParseOperand(q.Get("wkt"), q.Get("bbox"), q.Get("circle"))
	if err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	var recs []store.Record
	switch predicate {
	case query.PredicateIntersects:
		recs, err = fc.Intersection(operand)
	case query.PredicateContains:
		recs, err = fc.Contains(operand)
	default:
		recs, err = fc.Nearest(operand.Centroid(), query.ParseLimit(q.Get("limit")))
	}
	if h.metrics != nil {
		h.metrics.QueryDuration.WithLabelValues(string(predicate)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		writeError(w, lsierr.Wrap(lsierr.Internal, "query failed", err))
		return
	}

	stream := query.FromRecords(recs)
	types := q["type"]
	text := q.Get("text")
	if len(types) > 0 || text != "" {
		stream = query.ParseGraph(stream)
		if len(types) > 0 {
			stream = query.FilterTypes(stream, types)
		}
		if text != "" {
			stream = query.FilterText(stream, text)
		}
		stream = query.TrimGraph(stream)
	}
	stream = query.Offset(stream, query.ParseOffset(q.Get("offset")))
	stream = query.Limit(stream, query.ParseLimit(q.Get("limit")))

	items, err := query.Drain(stream)
	if err != nil {
		writeError(w, lsierr.Wrap(lsierr.Internal, "filtering results", err))
		return
	}
	results := make([]store.Record, len(items))
	for i, it := range items {
		results[i] = it.Record
	}

	switch q.Get("query") {
	case "":
		w.Header().Set("Content-Type", "application/json")
		if err := query.EncodeJSON(w, results); err != nil {
			h.log.WithError(err).Warn("failed to encode search response")
		}
	case "closure":
		h.writeClosure(w, r, results)
	default:
		writeError(w, lsierr.New(lsierr.BadRequest, "no idea what kind of query that is"))
	}
}

func (h *handlers) writeClosure(w http.ResponseWriter, r *http.Request, results []store.Record) {
	candidates := make([]string, len(closureCandidates))
	for i, c := range closureCandidates {
		candidates[i] = c.mediaType
	}
	idx := negotiate.Negotiate(r.Header.Get("Accept"), candidates)
	if idx < 0 {
		writeError(w, lsierr.New(lsierr.NotAcceptable, "no acceptable representation for this closure"))
		return
	}
	chosen := closureCandidates[idx]
	w.Header().Set("Content-Type", chosen.mediaType)
	if err := query.EncodeClosure(w, results, chosen.format); err != nil {
		h.log.WithError(err).Warn("failed to encode closure response")
	}
}
