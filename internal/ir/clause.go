package ir

import "fmt"

// Clause is an operator-tagged term or phrase.
//
// This is a sealed interface - only TermClause and PhraseClause implement
// it. The marker method prevents external implementations and keeps type
// switches in the serializer exhaustive.
type Clause interface {
	clauseNode() // Marker method - seals interface to this package

	// Op returns the clause's operator.
	Op() Operator

	// Text returns the term, or the phrase joined with single spaces.
	Text() string
}

// TermClause is a single bare term.
type TermClause struct {
	Operator Operator `json:"operator"`
	Term     string   `json:"term"`
}

func (TermClause) clauseNode() {}

// Op implements Clause.
func (c TermClause) Op() Operator { return c.Operator }

// Text implements Clause.
func (c TermClause) Text() string { return c.Term }

// String renders the clause back in query syntax.
func (c TermClause) String() string {
	return prefix(c.Operator) + c.Term
}

// PhraseClause is a quoted run of terms, rejoined with single spaces.
type PhraseClause struct {
	Operator Operator `json:"operator"`
	Phrase   string   `json:"phrase"`
}

func (PhraseClause) clauseNode() {}

// Op implements Clause.
func (c PhraseClause) Op() Operator { return c.Operator }

// Text implements Clause.
func (c PhraseClause) Text() string { return c.Phrase }

// String renders the clause back in query syntax.
func (c PhraseClause) String() string {
	return fmt.Sprintf("%s%q", prefix(c.Operator), c.Phrase)
}

func prefix(op Operator) string {
	switch op {
	case OperatorMust:
		return "+"
	case OperatorMustNot:
		return "-"
	default:
		return ""
	}
}
