package grammar

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// texts flattens a parse tree into a compact, comparable form:
// terms as-is, phrases quoted, operators prefixed.
func texts(q *Query) []string {
	out := make([]string, 0, len(q.Clauses))
	for _, c := range q.Clauses {
		prefix := ""
		if c.Operator != nil {
			prefix = c.Operator.Symbol
		}
		switch body := c.Body.(type) {
		case *Term:
			out = append(out, prefix+body.Text)
		case *Phrase:
			s := prefix + `"`
			for i, t := range body.Terms {
				if i > 0 {
					s += "|"
				}
				s += t.Text
			}
			out = append(out, s+`"`)
		}
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \t\n ", []string{}},
		{"single term", "hello", []string{"hello"}},
		{"two terms", "hello world", []string{"hello", "world"}},
		{"leading and trailing whitespace", "  hello  ", []string{"hello"}},
		{"mixed separators", "a\tb\nc\r\nd", []string{"a", "b", "c", "d"}},
		{"must", "+ham", []string{"+ham"}},
		{"must not", "-green", []string{"-green"}},
		{"phrase", `"cat in the hat"`, []string{`"cat|in|the|hat"`}},
		{"empty phrase", `""`, []string{`""`}},
		{"phrase with inner runs of spaces", `"a   b "`, []string{`"a|b"`}},
		{"operator on phrase", `-"cat in"`, []string{`-"cat|in"`}},
		{"scenario A", `"cat in the hat" -green +ham`, []string{`"cat|in|the|hat"`, "-green", "+ham"}},
		{"scenario B", "the +cat in the -hat", []string{"the", "+cat", "in", "the", "-hat"}},
		{"term glued to phrase", `a"b c"`, []string{"a", `"b|c"`}},
		{"phrase glued to term", `"b c"d`, []string{`"b|c"`, "d"}},
		{"double operator", "++a", []string{"++a"}},
		{"operator inside term", "a-b c+d", []string{"a-b", "c+d"}},
		{"punctuation is term text", "hello, world!", []string{"hello,", "world!"}},
		{"non-ascii terms", "café +naïve", []string{"café", "+naïve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(tree))
		})
	}
}

func TestParse_Offsets(t *testing.T) {
	tree, err := Parse(`"cat in the hat" -green +ham`)
	require.NoError(t, err)
	require.Len(t, tree.Clauses, 3)

	phrase, ok := tree.Clauses[0].Body.(*Phrase)
	require.True(t, ok)
	assert.Nil(t, tree.Clauses[0].Operator)
	assert.Equal(t, 0, tree.Clauses[0].Offset)
	assert.Equal(t, 0, phrase.Offset)
	assert.Equal(t, 16, phrase.End)
	assert.Equal(t, []string{"cat", "in", "the", "hat"}, phrase.Texts())
	assert.Equal(t, 12, phrase.Terms[3].Offset)

	green := tree.Clauses[1]
	require.NotNil(t, green.Operator)
	assert.Equal(t, "-", green.Operator.Symbol)
	assert.Equal(t, 17, green.Offset)
	assert.Equal(t, &Term{Text: "green", Offset: 18}, green.Body)

	ham := tree.Clauses[2]
	require.NotNil(t, ham.Operator)
	assert.Equal(t, "+", ham.Operator.Symbol)
	assert.Equal(t, 24, ham.Operator.Offset)
	assert.Equal(t, &Term{Text: "ham", Offset: 25}, ham.Body)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   int
		expected Expectation
	}{
		{"unterminated phrase", `"cat in the hat`, 15, ExpectPhraseClose},
		{"unterminated phrase after terms", `cat "in the`, 11, ExpectPhraseClose},
		{"lone quote", `"`, 1, ExpectPhraseClose},
		{"whitespace after opening quote", `" cat"`, 1, ExpectPhraseClose},
		{"dangling operator at end", "a -", 3, ExpectTerm},
		{"operator followed by space", "a + b", 3, ExpectTerm},
		{"operator alone", "+", 1, ExpectTerm},
		{"unterminated phrase with operator", `+"cat`, 5, ExpectPhraseClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, tree, "failed parse must not return a partial tree")

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr), "expected *SyntaxError, got %T", err)
			assert.Equal(t, tt.input, synErr.Input)
			assert.Equal(t, tt.offset, synErr.Offset)
			assert.Equal(t, tt.expected, synErr.Expected)
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := Parse(`"cat in the hat`)
	require.Error(t, err)
	assert.Equal(t, "syntax error at offset 15: expected closing quote, found end of input", err.Error())

	_, err = Parse("a + b")
	require.Error(t, err)
	assert.Equal(t, `syntax error at offset 3: expected term, found " b"`, err.Error())
}

func TestSyntaxError_FoundTruncatesOnRuneBoundary(t *testing.T) {
	// byte 16 of the rest falls inside the eighth two-byte rune
	e := &SyntaxError{Input: "a" + strings.Repeat("\u00e9", 10), Offset: 0, Expected: ExpectEndOfInput}
	assert.Equal(t, "\"a"+strings.Repeat("\u00e9", 7)+"...\"", e.Found())

	short := &SyntaxError{Input: "+\u00e9", Offset: 1, Expected: ExpectEndOfInput}
	assert.Equal(t, "\"\u00e9\"", short.Found())
}

func TestSyntaxError_Caret(t *testing.T) {
	_, err := Parse(`"cat in the hat`)
	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))

	assert.Equal(t, "\"cat in the hat\n               ^ expected closing quote", synErr.Caret())
}

func TestSyntaxError_CaretFlattensControlWhitespace(t *testing.T) {
	synErr := &SyntaxError{Input: "a\t-", Offset: 3, Expected: ExpectTerm}
	assert.Equal(t, "a -\n   ^ expected term", synErr.Caret())
}

func TestExpectation_String(t *testing.T) {
	assert.Equal(t, "term", ExpectTerm.String())
	assert.Equal(t, "closing quote", ExpectPhraseClose.String())
	assert.Equal(t, "end of input", ExpectEndOfInput.String())
	assert.Equal(t, "Expectation(0)", Expectation(0).String())
}

func TestDiagnose_ClosedPhraseReportsEndOfInput(t *testing.T) {
	// Not reachable through Parse: the clause at 0 is well formed.
	synErr := diagnose(`"a b"`, 0)
	assert.Equal(t, ExpectEndOfInput, synErr.Expected)
	assert.Equal(t, 0, synErr.Offset)
}

func TestParse_ConcurrentUse(t *testing.T) {
	inputs := []string{
		`"cat in the hat" -green +ham`,
		"the +cat in the -hat",
		"",
		`"unterminated`,
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		input := inputs[i%len(inputs)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, firstErr := Parse(input)
			second, secondErr := Parse(input)
			assert.Equal(t, first, second)
			assert.Equal(t, firstErr, secondErr)
		}()
	}
	wg.Wait()
}
