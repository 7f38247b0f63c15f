// Package transform converts a grammar parse tree into typed clauses.
package transform

import (
	"fmt"
	"strings"

	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/ir"
)

// InternalError reports a parse tree the grammar should never produce.
// It signals a programming error, not bad user input.
type InternalError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at offset %d: %s", e.Offset, e.Message)
}

// Transform converts every clause node of tree into an ir.Clause, in input order.
func Transform(tree *grammar.Query) ([]ir.Clause, error) {
	if tree == nil {
		return nil, &InternalError{Message: "nil parse tree"}
	}

	clauses := make([]ir.Clause, 0, len(tree.Clauses))
	for _, node := range tree.Clauses {
		clause, err := transformClause(node)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func transformClause(node *grammar.Clause) (ir.Clause, error) {
	op, err := ResolveOperator(node.Operator)
	if err != nil {
		return nil, err
	}

	switch body := node.Body.(type) {
	case *grammar.Term:
		return ir.TermClause{Operator: op, Term: body.Text}, nil
	case *grammar.Phrase:
		return ir.PhraseClause{Operator: op, Phrase: strings.Join(body.Texts(), " ")}, nil
	default:
		return nil, &InternalError{
			Offset:  node.Offset,
			Message: fmt.Sprintf("unexpected clause body %T", node.Body),
		}
	}
}

// ResolveOperator maps a clause prefix to its operator:
// "+" is Must, "-" is MustNot, and no prefix is Should.
func ResolveOperator(op *grammar.Operator) (ir.Operator, error) {
	if op == nil {
		return ir.OperatorShould, nil
	}
	switch op.Symbol {
	case "+":
		return ir.OperatorMust, nil
	case "-":
		return ir.OperatorMustNot, nil
	default:
		return "", &InternalError{
			Offset:  op.Offset,
			Message: fmt.Sprintf("unknown operator %q", op.Symbol),
		}
	}
}
