package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/queryes"
	"github.com/roach88/qbool/internal/store"
	"github.com/roach88/qbool/internal/translate"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Stdin  bool   // one query per input line
	Output string // output file path
	Record bool   // append to history
}

// LineResult is one --stdin translation in JSON output.
type LineResult struct {
	Line     int         `json:"line"`
	Input    string      `json:"input"`
	Document ir.IRObject `json:"document,omitempty"`
	Error    *CLIError   `json:"error,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate [query]",
		Short: "Translate a query into a bool query document",
		Long: `Translate a search query into an Elasticsearch-style bool query document.

Output is canonical JSON: identical queries always produce identical bytes.

A query starting with "-" must follow "--" so it is not read as a flag.

Exit codes:
  0 - Translation succeeded
  1 - Query rejected (syntax error, too long)
  2 - Command error (bad output path, history database, etc.)

Examples:
  qbool translate '"cat in the hat" -green +ham'
  qbool translate --format json 'the +cat'
  qbool translate -- '-green +ham'
  cat queries.txt | qbool translate --stdin -o documents.ndjson
  qbool translate --record --db history.db '+ham'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Stdin {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Stdin {
				return runTranslateLines(opts, cmd)
			}
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Stdin, "stdin", false, "translate one query per line of standard input")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write document(s) to file")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record translations in the history database")

	return cmd
}

func runTranslate(opts *TranslateOptions, input string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	tr := opts.Translator()

	var st *store.Store
	if opts.Record {
		var err error
		if st, err = opts.openStore(f); err != nil {
			return err
		}
		defer st.Close()
	}

	res, err := tr.Translate(input)
	if st != nil {
		if recErr := recordTranslation(commandContext(cmd), st, f, input, res, err); recErr != nil {
			return recErr
		}
	}
	if err != nil {
		return reportError(f, err)
	}

	for _, c := range res.Overwritten {
		f.VerboseLog("overwritten by a later %s segment: %s", c.Op(), c)
	}

	text, err := queryes.Marshal(res.Document, opts.Config.Indent)
	if err != nil {
		return reportError(f, err)
	}

	if opts.Output != "" {
		if err := writeOutputFile(opts.Output, append(text, '\n')); err != nil {
			return reportCommandError(f, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		f.VerboseLog("Wrote document to %s", opts.Output)
	}

	if f.Format == "json" {
		return f.Success(res.Document)
	}
	fmt.Fprintln(f.Writer, string(text))
	return nil
}

// runTranslateLines translates each stdin line independently. Failed lines
// are reported and translation continues; the command fails at the end if
// any line failed.
func runTranslateLines(opts *TranslateOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	tr := opts.Translator()

	var st *store.Store
	if opts.Record {
		var err error
		if st, err = opts.openStore(f); err != nil {
			return err
		}
		defer st.Close()
	}

	var (
		results []LineResult
		ndjson  bytes.Buffer
		failed  int
	)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		input := scanner.Text()
		lr := LineResult{Line: line, Input: input}

		res, err := tr.Translate(input)
		if st != nil {
			if recErr := recordTranslation(commandContext(cmd), st, f, input, res, err); recErr != nil {
				return recErr
			}
		}
		if err != nil {
			failed++
			code, _, _ := classifyError(err)
			lr.Error = &CLIError{Code: code, Message: err.Error()}
			if f.Format != "json" {
				fmt.Fprintf(f.GetErrWriter(), "Error [%s] line %d: %v\n", code, line, err)
			}
			results = append(results, lr)
			continue
		}

		// One compact document per line keeps the output NDJSON.
		text, err := queryes.Marshal(res.Document, false)
		if err != nil {
			return reportError(f, err)
		}
		ndjson.Write(text)
		ndjson.WriteByte('\n')
		lr.Document = res.Document
		results = append(results, lr)
	}
	if err := scanner.Err(); err != nil {
		return reportCommandError(f, ErrCodeGeneric, fmt.Sprintf("reading standard input: %v", err))
	}

	if opts.Output != "" {
		if err := writeOutputFile(opts.Output, ndjson.Bytes()); err != nil {
			return reportCommandError(f, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		f.VerboseLog("Wrote %d document(s) to %s", len(results)-failed, opts.Output)
	}

	if f.Format == "json" {
		if results == nil {
			results = []LineResult{}
		}
		if err := f.Success(results); err != nil {
			return err
		}
	} else {
		f.Writer.Write(ndjson.Bytes())
	}

	if failed > 0 {
		return reportedExitError(ExitFailure, fmt.Sprintf("%d of %d line(s) failed", failed, len(results)))
	}
	return nil
}

// recordTranslation appends one attempt to the history store.
func recordTranslation(ctx context.Context, st *store.Store, f *OutputFormatter, input string, res *translate.Result, translateErr error) error {
	var doc ir.IRObject
	if res != nil {
		doc = res.Document
	}
	entry, err := st.Record(ctx, input, doc, translateErr)
	if err != nil {
		return reportCommandError(f, ErrCodeStore, err.Error())
	}
	f.VerboseLog("Recorded translation %s", entry.ID)
	return nil
}

func writeOutputFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
