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

package rdf

import "sort"

// JSONObject is an RDF/JSON object node: {value, type, datatype?, lang?}.
type JSONObject struct {
	Value    string `json:"value"`
	Type     string `json:"type"` // "uri", "bnode", or "literal"
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// JSONGraph is subject -> predicate -> list of objects, the encoding
// fixed by the specification for description_json.
type JSONGraph map[string]map[string][]JSONObject

// ToJSON encodes g as an RDF/JSON graph (subject -> predicate -> objects).
func (g *Graph) ToJSON() JSONGraph {
	out := make(JSONGraph)
	for _, tr := range g.triples {
		key := tr.S.Value
		if tr.S.Kind == KindBlank {
			key = "_:" + key
		}
		preds, ok := out[key]
		if !ok {
			preds = make(map[string][]JSONObject)
			out[key] = preds
		}
		preds[tr.P.Value] = append(preds[tr.P.Value], termToJSON(tr.O))
	}
	return out
}

func termToJSON(t Term) JSONObject {
	switch t.Kind {
	case KindIRI:
		return JSONObject{Value: t.Value, Type: "uri"}
	case KindBlank:
		return JSONObject{Value: t.Value, Type: "bnode"}
	default:
		return JSONObject{Value: t.Value, Type: "literal", Datatype: t.Datatype, Lang: t.Lang}
	}
}

func jsonToTerm(o JSONObject) Term {
	switch o.Type {
	case "uri":
		return IRI(o.Value)
	case "bnode":
		return Blank(o.Value)
	default:
		return Lit(o.Value, o.Datatype, o.Lang)
	}
}

// GraphFromJSON decodes an RDF/JSON graph back into a Graph of triples.
// Subject terms are treated as IRIs unless they look like a blank node
// label previously produced by this package (prefixed "_:").
func GraphFromJSON(j JSONGraph) *Graph {
	g := NewGraph()
	subjects := make([]string, 0, len(j))
	for s := range j {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	for _, s := range subjects {
		sTerm := subjectTerm(s)
		preds := j[s]
		predNames := make([]string, 0, len(preds))
		for p := range preds {
			predNames = append(predNames, p)
		}
		sort.Strings(predNames)
		for _, p := range predNames {
			for _, o := range preds[p] {
				g.Add(Triple{S: sTerm, P: IRI(p), O: jsonToTerm(o)})
			}
		}
	}
	return g
}

func subjectTerm(s string) Term {
	if len(s) > 2 && s[:2] == "_:" {
		return Blank(s[2:])
	}
	return IRI(s)
}
