// Package aggregate groups an ordered clause list into the three operator
// buckets of an ir.Query.
//
// # Aggregation rule
//
// The clause list is split into segments: maximal runs of consecutive
// clauses sharing one operator. For each operator only the LAST segment
// with that operator survives. Earlier segments with the same operator
// are overwritten, not concatenated:
//
//	the +cat in the -hat
//	segments: should(the) must(cat) should(in the) must_not(hat)
//	result:   should [in the], must [cat], must_not [hat]
//
// The isolated "the" is dropped. This reproduces the behavior of the
// reference implementation and is relied on by existing documents; do not
// change it to global grouping without a product decision.
// Overwritten reports the clauses the rule drops.
package aggregate

import "github.com/roach88/qbool/internal/ir"

// Segment is a maximal run of consecutive clauses sharing one operator.
type Segment struct {
	Operator ir.Operator
	Clauses  []ir.Clause
}

// Segments splits clauses wherever the operator changes between adjacent
// clauses. Segment order and the order inside each segment follow the input.
func Segments(clauses []ir.Clause) []Segment {
	var segments []Segment
	for _, c := range clauses {
		if n := len(segments); n > 0 && segments[n-1].Operator == c.Op() {
			segments[n-1].Clauses = append(segments[n-1].Clauses, c)
			continue
		}
		segments = append(segments, Segment{Operator: c.Op(), Clauses: []ir.Clause{c}})
	}
	return segments
}

// Aggregate builds the bucketed query. Each bucket holds the clauses of
// the last segment with its operator.
func Aggregate(clauses []ir.Clause) ir.Query {
	last := lastSegments(clauses)
	return ir.Query{
		Should:  last[ir.OperatorShould],
		Must:    last[ir.OperatorMust],
		MustNot: last[ir.OperatorMustNot],
	}
}

// Overwritten returns, in input order, the clauses Aggregate drops because
// a later segment with the same operator replaced theirs.
func Overwritten(clauses []ir.Clause) []ir.Clause {
	segments := Segments(clauses)
	lastIndex := make(map[ir.Operator]int, len(ir.Operators))
	for i, seg := range segments {
		lastIndex[seg.Operator] = i
	}

	var dropped []ir.Clause
	for i, seg := range segments {
		if lastIndex[seg.Operator] != i {
			dropped = append(dropped, seg.Clauses...)
		}
	}
	return dropped
}

func lastSegments(clauses []ir.Clause) map[ir.Operator][]ir.Clause {
	last := make(map[ir.Operator][]ir.Clause, len(ir.Operators))
	for _, seg := range Segments(clauses) {
		last[seg.Operator] = seg.Clauses
	}
	return last
}
