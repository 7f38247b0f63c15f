// Package translate wires the grammar, transform, aggregate and queryes
// stages into one query-to-document pipeline.
//
// Every stage is a pure function, so a Translator holds only immutable
// options and is safe for concurrent use.
package translate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/roach88/qbool/internal/aggregate"
	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/queryes"
	"github.com/roach88/qbool/internal/transform"
)

// ErrQueryTooLong is returned when the input exceeds the configured MaxLength.
var ErrQueryTooLong = errors.New("query too long")

// ErrInvalidUTF8 is returned when the input is not valid UTF-8. Documents
// carry term text verbatim, so it must be representable as a JSON string.
var ErrInvalidUTF8 = errors.New("query is not valid UTF-8")

// Result carries every intermediate stage of one translation.
type Result struct {
	Input       string
	Tree        *grammar.Query
	Clauses     []ir.Clause
	Segments    []aggregate.Segment
	Query       ir.Query
	Overwritten []ir.Clause
	Document    ir.IRObject
}

// Translator runs the pipeline with optional limits and logging.
type Translator struct {
	maxLength int
	logger    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithMaxLength rejects inputs longer than n bytes. Zero means unlimited.
func WithMaxLength(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.maxLength = n
		}
	}
}

// WithLogger sets the debug logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Translator. Without options it logs nothing and accepts
// input of any length.
func New(opts ...Option) *Translator {
	t := &Translator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// MaxLength returns the configured input limit in bytes (0 = unlimited).
func (t *Translator) MaxLength() int {
	return t.maxLength
}

// Translate runs the full pipeline. On failure it returns a nil Result;
// syntax errors are *grammar.SyntaxError, retrievable with errors.As.
func (t *Translator) Translate(input string) (*Result, error) {
	if t.maxLength > 0 && len(input) > t.maxLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrQueryTooLong, len(input), t.maxLength)
	}
	if !utf8.ValidString(input) {
		return nil, ErrInvalidUTF8
	}

	tree, err := grammar.Parse(input)
	if err != nil {
		t.logger.Debug("parse failed", "input", input, "error", err)
		return nil, err
	}

	clauses, err := transform.Transform(tree)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	segments := aggregate.Segments(clauses)
	q := aggregate.Aggregate(clauses)
	overwritten := aggregate.Overwritten(clauses)

	t.logger.Debug("query aggregated",
		"clauses", len(clauses),
		"segments", len(segments),
		"should", len(q.Should),
		"must", len(q.Must),
		"must_not", len(q.MustNot))
	for _, c := range overwritten {
		t.logger.Debug("clause overwritten by later segment",
			"operator", string(c.Op()),
			"text", c.Text())
	}

	doc, err := queryes.Serialize(q)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	return &Result{
		Input:       input,
		Tree:        tree,
		Clauses:     clauses,
		Segments:    segments,
		Query:       q,
		Overwritten: overwritten,
		Document:    doc,
	}, nil
}

// ParseAndTranslate converts one query string into its output document
// with default options.
func ParseAndTranslate(input string) (ir.IRObject, error) {
	res, err := defaultTranslator.Translate(input)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}

var defaultTranslator = New()
