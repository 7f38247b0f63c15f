package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qbool/internal/grammar"
	"github.com/roach88/qbool/internal/ir"
)

// Scenario defines one conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the raw query string.
	Input string `yaml:"input"`

	// MaxLength sets the translator's byte limit. 0 means unlimited.
	MaxLength int `yaml:"max_length,omitempty"`

	// Expect lists the clauses each bucket must hold, in order.
	// Exactly one of Expect and Error is set.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Error describes the expected translation failure.
	Error *ErrorClause `yaml:"error,omitempty"`
}

// ExpectClause specifies a successful translation. Every bucket is
// compared exactly; an omitted bucket must be empty.
type ExpectClause struct {
	Should  []ClauseSpec `yaml:"should,omitempty"`
	Must    []ClauseSpec `yaml:"must,omitempty"`
	MustNot []ClauseSpec `yaml:"must_not,omitempty"`

	// Overwritten, when present, lists the clauses dropped by aggregation.
	// Each entry names its own operator.
	Overwritten []ClauseSpec `yaml:"overwritten,omitempty"`
}

// ClauseSpec names one expected clause. Exactly one of Term and Phrase is
// set; pointers distinguish the empty phrase `phrase: ""` from an absent
// field. Operator is required in overwritten entries and, inside a bucket,
// must be empty or equal to the bucket.
type ClauseSpec struct {
	Operator ir.Operator `yaml:"operator,omitempty"`
	Term     *string     `yaml:"term,omitempty"`
	Phrase   *string     `yaml:"phrase,omitempty"`
}

// Clause builds the expected ir.Clause. The entry's own operator wins
// over op.
func (c ClauseSpec) Clause(op ir.Operator) ir.Clause {
	if c.Operator != "" {
		op = c.Operator
	}
	if c.Phrase != nil {
		return ir.PhraseClause{Operator: op, Phrase: *c.Phrase}
	}
	return ir.TermClause{Operator: op, Term: *c.Term}
}

// ErrorClause specifies an expected failure.
type ErrorClause struct {
	// Offset is the expected SyntaxError byte offset.
	Offset *int `yaml:"offset,omitempty"`

	// Expected is the expected construct name ("term", "closing quote",
	// "end of input").
	Expected string `yaml:"expected,omitempty"`

	// TooLong expects the input to be rejected by MaxLength.
	TooLong bool `yaml:"too_long,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml/.yml file under dir whose base name
// (without extension) matches filter. An empty filter matches all.
// Files are returned in lexical path order.
func LoadScenarios(dir, filter string) ([]*Scenario, []string, error) {
	paths, err := FindScenarioFiles(dir, filter)
	if err != nil {
		return nil, nil, err
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, paths, nil
}

// FindScenarioFiles finds all YAML scenario files in a directory.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

var expectationNames = map[string]bool{
	grammar.ExpectTerm.String():        true,
	grammar.ExpectPhraseClose.String(): true,
	grammar.ExpectEndOfInput.String():  true,
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.MaxLength < 0 {
		return fmt.Errorf("max_length must be non-negative")
	}

	switch {
	case s.Expect == nil && s.Error == nil:
		return fmt.Errorf("one of expect or error is required")
	case s.Expect != nil && s.Error != nil:
		return fmt.Errorf("expect and error are mutually exclusive")
	}

	if s.Expect != nil {
		groups := map[string][]ClauseSpec{
			"should":      s.Expect.Should,
			"must":        s.Expect.Must,
			"must_not":    s.Expect.MustNot,
			"overwritten": s.Expect.Overwritten,
		}
		for name, specs := range groups {
			for i, c := range specs {
				if (c.Term == nil) == (c.Phrase == nil) {
					return fmt.Errorf("expect.%s[%d]: exactly one of term or phrase is required", name, i)
				}
				switch {
				case name == "overwritten" && !c.Operator.Valid():
					return fmt.Errorf("expect.overwritten[%d]: operator must be one of should, must, must_not", i)
				case name != "overwritten" && c.Operator != "" && string(c.Operator) != name:
					return fmt.Errorf("expect.%s[%d]: operator %q does not match its bucket", name, i, c.Operator)
				}
			}
		}
	}

	if e := s.Error; e != nil {
		if e.TooLong {
			if e.Offset != nil || e.Expected != "" {
				return fmt.Errorf("error: too_long excludes offset and expected")
			}
			if s.MaxLength == 0 {
				return fmt.Errorf("error: too_long requires max_length")
			}
			return nil
		}
		if e.Offset == nil && e.Expected == "" {
			return fmt.Errorf("error: offset, expected or too_long is required")
		}
		if e.Expected != "" && !expectationNames[e.Expected] {
			return fmt.Errorf("error: unknown expected construct %q", e.Expected)
		}
		if e.Offset != nil && *e.Offset < 0 {
			return fmt.Errorf("error: offset must be non-negative")
		}
	}

	return nil
}
