package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/qbool/internal/translate"
)

// Harness runs scenarios through the translation pipeline.
type Harness struct {
	logger *slog.Logger
}

// New creates a Harness. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a silent harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run translates the scenario input and checks it against the scenario's
// expectations. A translation failure is a scenario outcome, not an error;
// the returned error is reserved for unusable scenarios.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("nil scenario")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", scenario.Name, err)
	}

	tr := translate.New(
		translate.WithMaxLength(scenario.MaxLength),
		translate.WithLogger(h.logger),
	)

	result := NewResult()
	res, err := tr.Translate(scenario.Input)
	if err != nil {
		result.Err = err
	} else {
		result.Translation = res
		result.Document = res.Document
	}

	for _, msg := range checkScenario(scenario, result) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors),
	)
	return result, nil
}
