// Package config loads qbool's CUE configuration file.
//
// A config file is plain CUE unified with the embedded #Config schema:
//
//	format:           "json"
//	indent:           false
//	max_query_length: 4096
//	history:          "qbool-history.db"
//
// Every field is optional; missing fields take the schema defaults.
// Unknown fields are rejected.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the resolved configuration.
type Config struct {
	Format         string
	Indent         bool
	MaxQueryLength int
	History        string
}

// Defaults returns the configuration used when no file is given.
// It matches the defaults declared in schema.cue.
func Defaults() Config {
	return Config{
		Format: FormatText,
		Indent: true,
	}
}

// Error reports an invalid configuration file with a CUE position when
// one is available.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var knownFields = map[string]bool{
	"format":           true,
	"indent":           true,
	"max_query_length": true,
	"history":          true,
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE source against the schema and extracts the fields.
// filename is used only in error positions.
func Parse(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	if err := checkFields(file); err != nil {
		return Config{}, err
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := v.Validate(); err != nil {
		return Config{}, formatCUEError(err)
	}

	var (
		cfg Config
		err error
	)
	if cfg.Format, err = lookupString(v, "format"); err != nil {
		return Config{}, err
	}
	if cfg.Indent, err = lookupBool(v, "indent"); err != nil {
		return Config{}, err
	}
	maxLen, err := lookupInt(v, "max_query_length")
	if err != nil {
		return Config{}, err
	}
	cfg.MaxQueryLength = int(maxLen)
	if cfg.History, err = lookupString(v, "history"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// checkFields rejects top-level labels the schema does not declare.
func checkFields(file cue.Value) error {
	iter, err := file.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if !knownFields[iter.Label()] {
			return &Error{
				Field:   iter.Label(),
				Message: "field not allowed",
				Pos:     iter.Value().Pos(),
			}
		}
	}
	return nil
}

func lookup(v cue.Value, field string) cue.Value {
	fv := v.LookupPath(cue.ParsePath(field))
	if d, ok := fv.Default(); ok {
		return d
	}
	return fv
}

func lookupString(v cue.Value, field string) (string, error) {
	s, err := lookup(v, field).String()
	if err != nil {
		return "", fieldError(field, err)
	}
	return s, nil
}

func lookupBool(v cue.Value, field string) (bool, error) {
	b, err := lookup(v, field).Bool()
	if err != nil {
		return false, fieldError(field, err)
	}
	return b, nil
}

func lookupInt(v cue.Value, field string) (int64, error) {
	n, err := lookup(v, field).Int64()
	if err != nil {
		return 0, fieldError(field, err)
	}
	return n, nil
}

func fieldError(field string, err error) error {
	var pos token.Pos
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		if positions := cueerrors.Positions(errs[0]); len(positions) > 0 {
			pos = positions[0]
		}
	}
	return &Error{Field: field, Message: err.Error(), Pos: pos}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	var pos token.Pos
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		pos = positions[0]
	}
	return &Error{Field: "cue", Message: first.Error(), Pos: pos}
}
