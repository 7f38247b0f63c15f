package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/queryes"
	"github.com/roach88/qbool/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// HistoryEntry is a history row in JSON output.
type HistoryEntry struct {
	ID           string      `json:"id"`
	Seq          int64       `json:"seq"`
	Input        string      `json:"input"`
	DocumentHash string      `json:"document_hash,omitempty"`
	Document     ir.IRObject `json:"document,omitempty"`
	Error        string      `json:"error,omitempty"`
	ToolVersion  string      `json:"tool_version"`
}

// NewHistoryCommand creates the history command and its show subcommand.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded translations",
		Long: `List translations recorded with "qbool translate --record", newest first.

The database comes from --db or the history field of the config file.

Examples:
  qbool history --db history.db
  qbool history --db history.db --limit 5 --format json
  qbool history --db history.db show 018f4e9c-2b7a-7c3e-9a51-3f0d2c6b8e41`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum entries to list (0 = all)")
	cmd.AddCommand(newHistoryShowCommand(rootOpts))

	return cmd
}

func newHistoryShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one recorded translation",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(rootOpts, args[0], cmd)
		},
	}
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if opts.Limit < 0 {
		return reportCommandError(f, ErrCodeGeneric, "--limit must be non-negative")
	}

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(commandContext(cmd), opts.Limit)
	if err != nil {
		return reportCommandError(f, ErrCodeStore, err.Error())
	}

	if f.Format == "json" {
		views := make([]HistoryEntry, 0, len(entries))
		for _, e := range entries {
			views = append(views, historyView(e))
		}
		return f.Success(views)
	}

	if len(entries) == 0 {
		fmt.Fprintln(f.Writer, "No translations recorded.")
		return nil
	}
	for _, e := range entries {
		if e.Succeeded() {
			fmt.Fprintf(f.Writer, "%s  ok     %s  %q\n", e.ID, shortHash(e.DocumentHash), e.Input)
		} else {
			fmt.Fprintf(f.Writer, "%s  error  %-12s  %q\n", e.ID, "", e.Input)
		}
	}
	return nil
}

func runHistoryShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, err := opts.openStore(f)
	if err != nil {
		return err
	}
	defer st.Close()

	entry, err := st.Get(commandContext(cmd), id)
	if errors.Is(err, store.ErrNotFound) {
		return reportError(f, err)
	}
	if err != nil {
		return reportCommandError(f, ErrCodeStore, err.Error())
	}

	if f.Format == "json" {
		return f.Success(historyView(entry))
	}
	return writeEntryText(f.Writer, entry, opts.Config.Indent)
}

func writeEntryText(w io.Writer, e store.Entry, indent bool) error {
	fmt.Fprintf(w, "ID:      %s\n", e.ID)
	fmt.Fprintf(w, "Seq:     %d\n", e.Seq)
	fmt.Fprintf(w, "Input:   %q\n", e.Input)
	fmt.Fprintf(w, "Version: %s\n", e.ToolVersion)
	if !e.Succeeded() {
		fmt.Fprintf(w, "Error:   %s\n", e.Error)
		return nil
	}

	fmt.Fprintf(w, "Hash:    %s\n", e.DocumentHash)
	text, err := queryes.Marshal(e.Document, indent)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, string(text))
	return nil
}

func historyView(e store.Entry) HistoryEntry {
	return HistoryEntry{
		ID:           e.ID,
		Seq:          e.Seq,
		Input:        e.Input,
		DocumentHash: e.DocumentHash,
		Document:     e.Document,
		Error:        e.Error,
		ToolVersion:  e.ToolVersion,
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
