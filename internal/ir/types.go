package ir

import "fmt"

// Operator is the inclusion semantics attached to a clause.
//
// The string value doubles as the boolean-query group key, so an
// Operator can be used directly as a document key.
type Operator string

const (
	// OperatorShould marks an optional clause (no prefix).
	OperatorShould Operator = "should"

	// OperatorMust marks a required clause ("+" prefix).
	OperatorMust Operator = "must"

	// OperatorMustNot marks an excluded clause ("-" prefix).
	OperatorMustNot Operator = "must_not"
)

// Operators lists every operator in document group order.
var Operators = []Operator{OperatorShould, OperatorMust, OperatorMustNot}

// Valid reports whether o is one of the three known operators.
func (o Operator) Valid() bool {
	switch o {
	case OperatorShould, OperatorMust, OperatorMustNot:
		return true
	}
	return false
}

// Query is the three-bucket aggregation of clauses.
//
// Order within each bucket follows the aggregation rule, which is not
// necessarily full input order.
type Query struct {
	Should  []Clause `json:"should,omitempty"`
	Must    []Clause `json:"must,omitempty"`
	MustNot []Clause `json:"must_not,omitempty"`
}

// Group returns the bucket for op.
// Panics on an unknown operator; callers resolve operators before this point.
func (q Query) Group(op Operator) []Clause {
	switch op {
	case OperatorShould:
		return q.Should
	case OperatorMust:
		return q.Must
	case OperatorMustNot:
		return q.MustNot
	default:
		panic(fmt.Sprintf("ir: unknown operator %q", op))
	}
}

// Len returns the total number of clauses across all buckets.
func (q Query) Len() int {
	return len(q.Should) + len(q.Must) + len(q.MustNot)
}

// IsEmpty reports whether no bucket holds a clause.
func (q Query) IsEmpty() bool {
	return q.Len() == 0
}
