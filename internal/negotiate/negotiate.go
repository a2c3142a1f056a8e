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

// Package negotiate implements the small slice of RFC 7231 content
// negotiation the closure query needs: picking the best of a fixed,
// ordered list of candidate media types against an Accept header. No pack
// dependency offers this narrowly (the ecosystem's negotiation libraries
// are either full HTTP frameworks or tied to a templating layer), so it
// is hand-rolled, mirroring the shape of the original's use of `autoneg`.
package negotiate

import (
	"sort"
	"strconv"
	"strings"
)

// candidate is one acceptable media type, in preference order (first is
// most preferred when qualities tie).
type candidate struct {
	typ, subtype string
}

type acceptEntry struct {
	typ, subtype string
	q            float64
	specificity  int
}

// Negotiate returns the index into candidates of the best match for the
// Accept header value accept, or -1 if nothing is acceptable.
func Negotiate(accept string, candidates []string) int {
	if accept == "" {
		accept = "*/*"
	}
	entries := parseAccept(accept)

	best := -1
	var bestQ float64
	var bestSpecificity int
	for i, c := range candidates {
		typ, subtype := split(c)
		q, specificity, ok := matchBest(entries, typ, subtype)
		if !ok || q <= 0 {
			continue
		}
		if best == -1 || q > bestQ || (q == bestQ && specificity > bestSpecificity) {
			best, bestQ, bestSpecificity = i, q, specificity
		}
	}
	return best
}

func split(mt string) (string, string) {
	parts := strings.SplitN(mt, "/", 2)
	if len(parts) != 2 {
		return mt, "*"
	}
	return parts[0], parts[1]
}

func matchBest(entries []acceptEntry, typ, subtype string) (float64, int, bool) {
	found := false
	var bestQ float64
	var bestSpecificity int
	for _, e := range entries {
		specificity := 0
		switch {
		case e.typ == typ && e.subtype == subtype:
			specificity = 2
		case e.typ == typ && e.subtype == "*":
			specificity = 1
		case e.typ == "*" && e.subtype == "*":
			specificity = 0
		default:
			continue
		}
		if !found || e.q > bestQ || (e.q == bestQ && specificity > bestSpecificity) {
			found, bestQ, bestSpecificity = true, e.q, specificity
		}
	}
	return bestQ, bestSpecificity, found
}

func parseAccept(header string) []acceptEntry {
	var entries []acceptEntry
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ";")
		typ, subtype := split(strings.TrimSpace(fields[0]))
		q := 1.0
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			if v, ok := strings.CutPrefix(f, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		entries = append(entries, acceptEntry{typ: typ, subtype: subtype, q: q})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].q > entries[j].q })
	return entries
}
