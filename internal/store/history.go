package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/qbool/internal/ir"
)

// ErrNotFound is returned by Get when no entry has the requested ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded translation attempt. Exactly one of Document and
// Error is set.
type Entry struct {
	Seq          int64
	ID           string
	Input        string
	Document     ir.IRObject
	DocumentHash string
	Error        string
	ToolVersion  string
	IRVersion    string
}

// Succeeded reports whether the translation produced a document.
func (e Entry) Succeeded() bool {
	return e.Document != nil
}

// Record appends one translation attempt. Pass the document on success or
// the translation error on failure; exactly one must be non-nil.
func (s *Store) Record(ctx context.Context, input string, doc ir.IRObject, translateErr error) (Entry, error) {
	if (doc == nil) == (translateErr == nil) {
		return Entry{}, fmt.Errorf("record: exactly one of document and error must be set")
	}

	entry := Entry{
		ID:          s.ids.Generate(),
		Input:       input,
		ToolVersion: ir.ToolVersion,
		IRVersion:   ir.DocumentVersion,
	}

	var docJSON, docHash sql.NullString
	if doc != nil {
		data, err := ir.MarshalCanonical(doc)
		if err != nil {
			return Entry{}, fmt.Errorf("record: marshal document: %w", err)
		}
		hash, err := ir.DocumentHash(doc)
		if err != nil {
			return Entry{}, fmt.Errorf("record: %w", err)
		}
		entry.Document = doc
		entry.DocumentHash = hash
		docJSON = sql.NullString{String: string(data), Valid: true}
		docHash = sql.NullString{String: hash, Valid: true}
	} else {
		entry.Error = translateErr.Error()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO translations
		(id, input, document, document_hash, error, tool_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.Input,
		docJSON,
		docHash,
		entry.Error,
		entry.ToolVersion,
		entry.IRVersion,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record translation: %w", err)
	}

	if entry.Seq, err = res.LastInsertId(); err != nil {
		return Entry{}, fmt.Errorf("record translation: %w", err)
	}
	return entry, nil
}

// Get returns the entry with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, input, document, document_hash, error, tool_version, ir_version
		FROM translations
		WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns the most recent entries first. limit <= 0 returns all.
// Returns an empty slice (not nil) when the history is empty.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT seq, id, input, document, document_hash, error, tool_version, ir_version
		FROM translations
		ORDER BY seq DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM translations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry   Entry
		docJSON sql.NullString
		docHash sql.NullString
	)
	err := row.Scan(
		&entry.Seq,
		&entry.ID,
		&entry.Input,
		&docJSON,
		&docHash,
		&entry.Error,
		&entry.ToolVersion,
		&entry.IRVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, fmt.Errorf("scan translation: %w", err)
	}

	if docJSON.Valid {
		doc, err := ir.UnmarshalDocument([]byte(docJSON.String))
		if err != nil {
			return Entry{}, fmt.Errorf("decode document for %s: %w", entry.ID, err)
		}
		entry.Document = doc
		entry.DocumentHash = docHash.String
	}
	return entry, nil
}
