package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/qbool/internal/config"
	"github.com/roach88/qbool/internal/store"
	"github.com/roach88/qbool/internal/translate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string

	// Config is the resolved configuration. Flags given explicitly on the
	// command line take precedence over it.
	Config config.Config

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// NewRootOptions returns options carrying the built-in defaults.
func NewRootOptions() *RootOptions {
	cfg := config.Defaults()
	return &RootOptions{Format: cfg.Format, Config: cfg}
}

// NewRootCommand creates the root command for the qbool CLI.
func NewRootCommand() *cobra.Command {
	opts := NewRootOptions()

	cmd := &cobra.Command{
		Use:   "qbool",
		Short: "qbool - search query to bool query compiler",
		Long: `Compile human-typed search queries into Elasticsearch-style bool queries.

Bare terms are optional (should), +term is required (must), -term is
excluded (must_not) and "quoted phrases" match as a phrase.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to CUE config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite history database")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// resolve loads the config file, applies it under explicit flags,
// validates the format and installs the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg := config.Defaults()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			f := &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
			if !isValidFormat(f.Format) {
				f.Format = config.FormatText
			}
			return reportCommandError(f, ErrCodeConfigInvalid, err.Error())
		}
		cfg = loaded
	}
	o.Config = cfg

	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Format
	}
	if !cmd.Flags().Changed("db") {
		o.Database = cfg.History
	}

	if !isValidFormat(o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// Logger returns the command logger, discarding output before resolve ran.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// Translator builds a translator from the resolved configuration.
func (o *RootOptions) Translator() *translate.Translator {
	return translate.New(
		translate.WithMaxLength(o.Config.MaxQueryLength),
		translate.WithLogger(o.Logger()),
	)
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// openStore opens the history database named by --db or the config.
func (o *RootOptions) openStore(f *OutputFormatter) (*store.Store, error) {
	if o.Database == "" {
		return nil, reportCommandError(f, ErrCodeStore,
			"no history database: pass --db or set history in the config file")
	}
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, reportCommandError(f, ErrCodeStore, err.Error())
	}
	return st, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
