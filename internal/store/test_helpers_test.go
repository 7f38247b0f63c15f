package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/qbool/internal/ir"
)

// createTestStore creates a store in a temp dir with deterministic IDs.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")

	var opts []Option
	if len(ids) > 0 {
		opts = append(opts, WithIDGenerator(NewFixedGenerator(ids...)))
	}
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testDocument returns the document for a single should term.
func testDocument(term string) ir.IRObject {
	return ir.Obj(ir.O("query", ir.Obj(ir.O("bool", ir.Obj(
		ir.O("should", ir.IRArray{
			ir.Obj(ir.O("match", ir.Obj(ir.O("title", ir.Obj(ir.O("query", ir.IRString(term))))))),
		}),
	)))))
}
