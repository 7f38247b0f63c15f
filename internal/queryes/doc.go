// Package queryes serializes a bucketed ir.Query into an Elasticsearch-style
// bool query document.
//
// Document shape:
//
//	{"query": {"bool": {
//	    "should":   [<leaf>, ...],
//	    "must":     [<leaf>, ...],
//	    "must_not": [<leaf>, ...]
//	}}}
//
// Groups appear only when non-empty. Leaves target the single field
// "title": terms become match queries, phrases become match_phrase
// queries.
package queryes
