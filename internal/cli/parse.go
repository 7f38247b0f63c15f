package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qbool/internal/aggregate"
	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/ir"
)

// ClauseView is a clause in parse command JSON output.
type ClauseView struct {
	Operator string `json:"operator"`
	Kind     string `json:"kind"` // "term" | "phrase"
	Text     string `json:"text"`
}

// SegmentView is a segment in parse command JSON output.
type SegmentView struct {
	Operator string       `json:"operator"`
	Clauses  []ClauseView `json:"clauses"`
}

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Input       string        `json:"input"`
	Tree        string        `json:"tree"`
	Clauses     []ClauseView  `json:"clauses"`
	Segments    []SegmentView `json:"segments"`
	Overwritten []ClauseView  `json:"overwritten"`
	Document    ir.IRObject   `json:"document"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Show every stage of a translation",
		Long: `Show the parse tree, clause list, operator segments and the clauses
dropped by aggregation for a query.

Only the last segment of each operator reaches the document, so
"the +cat in the -hat" drops the first "the". parse lists such clauses
under "Overwritten".

A query starting with "-" must follow "--" so it is not read as a flag.

Examples:
  qbool parse 'the +cat in the -hat'
  qbool parse --format json -- '-green +ham'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, input string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	res, err := opts.Translator().Translate(input)
	if err != nil {
		return reportError(f, err)
	}

	out := ParseResult{
		Input:       input,
		Tree:        grammar.Render(res.Tree),
		Clauses:     clauseViews(res.Clauses),
		Segments:    segmentViews(res.Segments),
		Overwritten: clauseViews(res.Overwritten),
		Document:    res.Document,
	}

	if f.Format == "json" {
		return f.Success(out)
	}
	writeParseText(f.Writer, out)
	return nil
}

func writeParseText(w io.Writer, out ParseResult) {
	fmt.Fprintln(w, "Parse tree:")
	for _, line := range strings.Split(strings.TrimRight(out.Tree, "\n"), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Clauses (%d):\n", len(out.Clauses))
	for i, c := range out.Clauses {
		fmt.Fprintf(w, "  %d. %-8s %-6s %q\n", i+1, c.Operator, c.Kind, c.Text)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Segments (%d):\n", len(out.Segments))
	for i, seg := range out.Segments {
		texts := make([]string, len(seg.Clauses))
		for j, c := range seg.Clauses {
			texts[j] = fmt.Sprintf("%q", c.Text)
		}
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, seg.Operator, strings.Join(texts, " "))
	}

	fmt.Fprintln(w)
	if len(out.Overwritten) == 0 {
		fmt.Fprintln(w, "Overwritten: none")
		return
	}
	fmt.Fprintf(w, "Overwritten (%d):\n", len(out.Overwritten))
	for _, c := range out.Overwritten {
		fmt.Fprintf(w, "  %-8s %q\n", c.Operator, c.Text)
	}
}

func clauseViews(clauses []ir.Clause) []ClauseView {
	views := make([]ClauseView, 0, len(clauses))
	for _, c := range clauses {
		kind := "term"
		if _, ok := c.(ir.PhraseClause); ok {
			kind = "phrase"
		}
		views = append(views, ClauseView{Operator: string(c.Op()), Kind: kind, Text: c.Text()})
	}
	return views
}

func segmentViews(segments []aggregate.Segment) []SegmentView {
	views := make([]SegmentView, 0, len(segments))
	for _, seg := range segments {
		views = append(views, SegmentView{
			Operator: string(seg.Operator),
			Clauses:  clauseViews(seg.Clauses),
		})
	}
	return views
}
