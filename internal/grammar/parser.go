package grammar

import (
	"fmt"

	"github.com/vektah/goparsify"
)

// queryRoot is the parser function called by Parse. It extracts the query
// in its entirety, or stops at the first clause it cannot parse.
var queryRoot goparsify.Parser

func init() {
	// If you need to debug what the parser is doing, build with -tags debug
	// and goparsify will log every rule it tries. See
	// https://github.com/vektah/goparsify#debugging-parsers
	space := spaceParser()
	term := termParser()
	quote := quoteParser()
	operator := operatorParser()

	phrase := goparsify.Seq(
		quote,
		goparsify.Some(goparsify.Seq(term, goparsify.Maybe(space))),
		quote,
	).Map(phraseNode)

	clause := goparsify.Seq(goparsify.Maybe(operator), bodyParser(phrase, term)).Map(clauseNode)

	// Whitespace is significant: it separates terms, so the parsers manage
	// it themselves instead of relying on goparsify's auto whitespace.
	queryRoot = goparsify.NoAutoWS(goparsify.Seq(
		goparsify.Maybe(space),
		goparsify.Some(goparsify.Seq(clause, goparsify.Maybe(space))),
	).Map(queryNode))
}

// Parse converts a raw query string into a parse tree.
//
// Empty and whitespace-only input yield a Query with no clauses. Any input
// the grammar cannot consume completely yields a *SyntaxError and no tree.
func Parse(input string) (*Query, error) {
	ps := goparsify.NewState(input)
	var result goparsify.Result
	queryRoot(ps, &result)

	if ps.Errored() || ps.Pos < len(input) {
		return nil, diagnose(input, ps.Pos)
	}

	tree, ok := result.Result.(*Query)
	if !ok {
		return nil, fmt.Errorf("grammar: unexpected parse result %T", result.Result)
	}
	return tree, nil
}

// isSpace reports whether b is ASCII whitespace.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isTermByte reports whether b may appear in a term. Multi-byte UTF-8
// sequences never contain ASCII bytes, so they are always term bytes.
func isTermByte(b byte) bool {
	return b != '"' && !isSpace(b)
}

func isOperator(b byte) bool {
	return b == '+' || b == '-'
}

// spaceParser consumes one or more whitespace bytes and produces no result.
func spaceParser() goparsify.Parser {
	return goparsify.NewParser("space", func(ps *goparsify.State, node *goparsify.Result) {
		end := ps.Pos
		for end < len(ps.Input) && isSpace(ps.Input[end]) {
			end++
		}
		if end == ps.Pos {
			ps.ErrorHere("whitespace")
			return
		}
		ps.Pos = end
	})
}

// termParser consumes a maximal run of term bytes into a *Term.
func termParser() goparsify.Parser {
	return goparsify.NewParser("term", func(ps *goparsify.State, node *goparsify.Result) {
		end := ps.Pos
		for end < len(ps.Input) && isTermByte(ps.Input[end]) {
			end++
		}
		if end == ps.Pos {
			ps.ErrorHere(ExpectTerm.String())
			return
		}
		node.Token = ps.Input[ps.Pos:end]
		node.Result = &Term{Text: node.Token, Offset: ps.Pos}
		ps.Pos = end
	})
}

// quoteParser consumes a single '"' and records its offset as the result.
func quoteParser() goparsify.Parser {
	return goparsify.NewParser("quote", func(ps *goparsify.State, node *goparsify.Result) {
		if ps.Pos >= len(ps.Input) || ps.Input[ps.Pos] != '"' {
			ps.ErrorHere(ExpectPhraseClose.String())
			return
		}
		node.Token = `"`
		node.Result = ps.Pos
		ps.Pos++
	})
}

// operatorParser consumes a "+" or "-" prefix into an *Operator.
func operatorParser() goparsify.Parser {
	return goparsify.NewParser("operator", func(ps *goparsify.State, node *goparsify.Result) {
		if ps.Pos >= len(ps.Input) || !isOperator(ps.Input[ps.Pos]) {
			ps.ErrorHere("operator")
			return
		}
		node.Token = ps.Input[ps.Pos : ps.Pos+1]
		node.Result = &Operator{Symbol: node.Token, Offset: ps.Pos}
		ps.Pos++
	})
}

// bodyParser picks phrase or term by the first byte. The two never share
// a first byte, so no backtracking between them is needed.
func bodyParser(phrase, term goparsify.Parser) goparsify.Parser {
	return goparsify.NewParser("body", func(ps *goparsify.State, node *goparsify.Result) {
		if ps.Pos < len(ps.Input) && ps.Input[ps.Pos] == '"' {
			phrase(ps, node)
			return
		}
		term(ps, node)
	})
}

// phraseNode builds a *Phrase from: 0 open quote, 1 (term space?)*, 2 close quote.
func phraseNode(n *goparsify.Result) {
	terms := make([]*Term, 0, len(n.Child[1].Child))
	for _, child := range n.Child[1].Child {
		terms = append(terms, child.Child[0].Result.(*Term))
	}
	n.Result = &Phrase{
		Terms:  terms,
		Offset: n.Child[0].Result.(int),
		End:    n.Child[2].Result.(int) + 1,
	}
}

// clauseNode builds a *Clause from: 0 operator?, 1 body.
func clauseNode(n *goparsify.Result) {
	clause := &Clause{Body: n.Child[1].Result.(Body)}
	if op, ok := n.Child[0].Result.(*Operator); ok {
		clause.Operator = op
		clause.Offset = op.Offset
	} else {
		clause.Offset = bodyOffset(clause.Body)
	}
	n.Result = clause
}

// queryNode builds the *Query from: 0 space?, 1 (clause space?)*.
func queryNode(n *goparsify.Result) {
	clauses := make([]*Clause, 0, len(n.Child[1].Child))
	for _, child := range n.Child[1].Child {
		clauses = append(clauses, child.Child[0].Result.(*Clause))
	}
	n.Result = &Query{Clauses: clauses}
}

func bodyOffset(b Body) int {
	switch body := b.(type) {
	case *Term:
		return body.Offset
	case *Phrase:
		return body.Offset
	default:
		return 0
	}
}
