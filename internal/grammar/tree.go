package grammar

// Query is the root of a parse tree: the clauses in input order.
type Query struct {
	Clauses []*Clause
}

// Clause is an optionally operator-prefixed phrase or term.
type Clause struct {
	// Operator is nil when the clause carries no prefix.
	Operator *Operator

	// Body is the phrase or term the clause wraps.
	Body Body

	// Offset is the byte offset of the clause's first character
	// (the operator when present).
	Offset int
}

// Operator is a "+" or "-" prefix as it appeared in the input.
type Operator struct {
	Symbol string
	Offset int
}

// Body is the content of a clause.
//
// This is a sealed interface - only Term and Phrase implement it.
type Body interface {
	bodyNode() // Marker method - seals interface to this package
}

// Term is a maximal run of non-whitespace, non-quote bytes.
type Term struct {
	Text   string
	Offset int
}

func (*Term) bodyNode() {}

// Phrase is a quoted run of terms. Inner terms never carry operators.
type Phrase struct {
	Terms []*Term

	// Offset is the position of the opening quote, End the position just
	// past the closing quote.
	Offset int
	End    int
}

func (*Phrase) bodyNode() {}

// Texts returns the inner term texts in order.
func (p *Phrase) Texts() []string {
	texts := make([]string, len(p.Terms))
	for i, t := range p.Terms {
		texts[i] = t.Text
	}
	return texts
}
