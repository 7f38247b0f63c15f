package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/qbool/internal/ir"
)

// Snapshot returns the golden bytes for a result: the canonical JSON of the
// document on success, or {"error":<message>} on failure.
func Snapshot(r *Result) ([]byte, error) {
	if r.Err != nil {
		return ir.MarshalCanonical(ir.Obj(ir.O("error", ir.IRString(r.Err.Error()))))
	}
	if r.Document == nil {
		return nil, fmt.Errorf("result has neither document nor error")
	}
	return ir.MarshalCanonical(r.Document)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
