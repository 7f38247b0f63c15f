package queryes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/qbool/internal/ir"
)

// Field is the document field every leaf query targets.
const Field = "title"

// Leaf query kinds.
const (
	KindMatch       = "match"
	KindMatchPhrase = "match_phrase"
)

// Serialize converts a bucketed query into its output document.
// Group order inside the document is irrelevant; canonical marshaling
// sorts keys. Clause order inside each group follows q.
func Serialize(q ir.Query) (ir.IRObject, error) {
	groups := make(ir.IRObject, len(ir.Operators))
	for _, op := range ir.Operators {
		clauses := q.Group(op)
		if len(clauses) == 0 {
			continue
		}
		leaves := make(ir.IRArray, 0, len(clauses))
		for i, c := range clauses {
			leaf, err := Leaf(c)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", op, i, err)
			}
			leaves = append(leaves, leaf)
		}
		groups[string(op)] = leaves
	}

	return ir.Obj(ir.O("query", ir.Obj(ir.O("bool", groups)))), nil
}

// Leaf renders one clause as a match or match_phrase query on Field.
func Leaf(c ir.Clause) (ir.IRObject, error) {
	switch clause := c.(type) {
	case ir.TermClause:
		return leaf(KindMatch, clause.Term), nil
	case ir.PhraseClause:
		return leaf(KindMatchPhrase, clause.Phrase), nil
	default:
		return nil, fmt.Errorf("unsupported clause type: %T", c)
	}
}

func leaf(kind, text string) ir.IRObject {
	return ir.Obj(ir.O(kind, ir.Obj(ir.O(Field, ir.Obj(ir.O("query", ir.IRString(text)))))))
}

// Marshal renders doc as canonical JSON. With indent set the canonical
// bytes are re-indented with two spaces; key order and string escaping
// are unchanged, so the output is still deterministic.
func Marshal(doc ir.IRObject, indent bool) ([]byte, error) {
	data, err := ir.MarshalCanonical(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	if !indent {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	return buf.Bytes(), nil
}
