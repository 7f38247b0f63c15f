package harness

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/translate"
)

// checkScenario compares a run against the scenario and returns one
// message per mismatch.
func checkScenario(s *Scenario, r *Result) []string {
	if s.Expect != nil {
		return checkExpect(s.Expect, r)
	}
	return checkError(s.Error, r)
}

func checkExpect(want *ExpectClause, r *Result) []string {
	if r.Err != nil {
		return []string{fmt.Sprintf("expected a document, got error: %v", r.Err)}
	}

	var msgs []string
	groups := []struct {
		op   ir.Operator
		want []ClauseSpec
	}{
		{ir.OperatorShould, want.Should},
		{ir.OperatorMust, want.Must},
		{ir.OperatorMustNot, want.MustNot},
	}
	q := r.Translation.Query
	for _, g := range groups {
		expected := specClauses(g.want, g.op)
		if msg := compareClauses(string(g.op), expected, q.Group(g.op)); msg != "" {
			msgs = append(msgs, msg)
		}
	}

	if want.Overwritten != nil {
		expected := specClauses(want.Overwritten, "")
		if msg := compareClauses("overwritten", expected, r.Translation.Overwritten); msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func checkError(want *ErrorClause, r *Result) []string {
	if r.Err == nil {
		return []string{"expected an error, got a document"}
	}

	if want.TooLong {
		if !errors.Is(r.Err, translate.ErrQueryTooLong) {
			return []string{fmt.Sprintf("expected query too long, got: %v", r.Err)}
		}
		return nil
	}

	var synErr *grammar.SyntaxError
	if !errors.As(r.Err, &synErr) {
		return []string{fmt.Sprintf("expected a syntax error, got: %v", r.Err)}
	}

	var msgs []string
	if want.Offset != nil && *want.Offset != synErr.Offset {
		msgs = append(msgs, fmt.Sprintf("error offset: expected %d, got %d", *want.Offset, synErr.Offset))
	}
	if want.Expected != "" && want.Expected != synErr.Expected.String() {
		msgs = append(msgs, fmt.Sprintf("error expected: expected %q, got %q", want.Expected, synErr.Expected))
	}
	return msgs
}

func specClauses(specs []ClauseSpec, op ir.Operator) []ir.Clause {
	clauses := make([]ir.Clause, 0, len(specs))
	for _, spec := range specs {
		clauses = append(clauses, spec.Clause(op))
	}
	return clauses
}

// compareClauses returns "" when the lists match element for element.
func compareClauses(label string, expected, actual []ir.Clause) string {
	if len(expected) == 0 && len(actual) == 0 {
		return ""
	}
	if reflect.DeepEqual(expected, actual) {
		return ""
	}
	return fmt.Sprintf("%s: expected %s, got %s", label, formatClauses(expected), formatClauses(actual))
}

func formatClauses(clauses []ir.Clause) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = fmt.Sprint(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
