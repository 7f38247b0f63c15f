package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Expectation names the construct the parser needed at the failure offset.
type Expectation int

const (
	// ExpectTerm means a term (or phrase) was required, e.g. after a
	// dangling "+" or "-".
	ExpectTerm Expectation = iota + 1

	// ExpectPhraseClose means a phrase was open and needed another term or
	// its closing quote.
	ExpectPhraseClose

	// ExpectEndOfInput means a complete query was parsed but input remained.
	ExpectEndOfInput
)

// String returns the human-readable name of the expected construct.
func (e Expectation) String() string {
	switch e {
	case ExpectTerm:
		return "term"
	case ExpectPhraseClose:
		return "closing quote"
	case ExpectEndOfInput:
		return "end of input"
	default:
		return fmt.Sprintf("Expectation(%d)", int(e))
	}
}

// SyntaxError reports malformed query input.
type SyntaxError struct {
	// Input is the full query that failed to parse.
	Input string

	// Offset is the byte offset of the furthest successful parse.
	Offset int

	// Expected is what the grammar needed at Offset.
	Expected Expectation
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: expected %s, found %s",
		e.Offset, e.Expected, e.Found())
}

// Found describes the input at Offset for diagnostics.
func (e *SyntaxError) Found() string {
	if e.Offset >= len(e.Input) {
		return "end of input"
	}
	const maxFound = 16
	rest := e.Input[e.Offset:]
	if len(rest) > maxFound {
		n := maxFound
		for n > 0 && !utf8.RuneStart(rest[n]) {
			n--
		}
		rest = rest[:n] + "..."
	}
	return fmt.Sprintf("%q", rest)
}

// Caret renders the input with a caret under the failure offset:
//
//	"cat in the hat
//	               ^ expected closing quote
//
// Control whitespace in the input is shown as a single space so the caret
// stays aligned.
func (e *SyntaxError) Caret() string {
	var line strings.Builder
	column := 0
	for i, r := range e.Input {
		if i < e.Offset {
			column++
		}
		if r < ' ' {
			r = ' '
		}
		line.WriteRune(r)
	}
	return fmt.Sprintf("%s\n%s^ expected %s", line.String(), strings.Repeat(" ", column), e.Expected)
}

// diagnose explains why the clause starting at start could not be parsed.
//
// It replays the clause rule by hand to find how far the input conforms to
// the grammar and what was needed there.
func diagnose(input string, start int) *SyntaxError {
	pos := start
	if pos < len(input) && isOperator(input[pos]) {
		pos++
	}
	if pos >= len(input) || isSpace(input[pos]) {
		return &SyntaxError{Input: input, Offset: pos, Expected: ExpectTerm}
	}
	if input[pos] != '"' {
		return &SyntaxError{Input: input, Offset: start, Expected: ExpectEndOfInput}
	}

	// Inside a phrase: (term space?)* then the closing quote.
	pos++
	for pos < len(input) && isTermByte(input[pos]) {
		for pos < len(input) && isTermByte(input[pos]) {
			pos++
		}
		for pos < len(input) && isSpace(input[pos]) {
			pos++
		}
	}
	if pos < len(input) && input[pos] == '"' {
		// The phrase closes; the parser stopped for some other reason.
		return &SyntaxError{Input: input, Offset: start, Expected: ExpectEndOfInput}
	}
	return &SyntaxError{Input: input, Offset: pos, Expected: ExpectPhraseClose}
}
