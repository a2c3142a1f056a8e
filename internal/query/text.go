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

package query

import (
	"strings"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// FilterText keeps only items that have at least one literal object
// value (case-insensitively) containing text, scanned with a single
// Aho-Corasick automaton built once per call, mirroring the original
// implementation's per-query AcoraBuilder. Requires ParseGraph upstream.
func FilterText(in Stream, text string) Stream {
	trie := ahocorasick.NewTrieBuilder().AddStrings([]string{strings.ToLower(text)}).Build()
	return func() (Item, bool, error) {
		for {
			item, ok, err := in()
			if !ok || err != nil {
				return item, ok, err
			}
			if item.Graph != nil && matchesAny(trie, item.Graph.Literals()) {
				return item, true, nil
			}
		}
	}
}

func matchesAny(trie *ahocorasick.Trie, literals []string) bool {
	for _, lit := range literals {
		if len(trie.MatchString(strings.ToLower(lit))) > 0 {
			return true
		}
	}
	return false
}
