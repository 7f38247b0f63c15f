package harness

import (
	"github.com/roach88/qbool/internal/ir"
	"github.com/roach88/qbool/internal/translate"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates every expectation matched.
	Pass bool `json:"pass"`

	// Errors contains expectation mismatch messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Document is the produced document, nil when translation failed.
	Document ir.IRObject `json:"document,omitempty"`

	// Translation holds the intermediate stages of a successful run.
	Translation *translate.Result `json:"-"`

	// Err is the translation error, nil on success.
	Err error `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
