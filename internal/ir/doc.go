// Package ir provides the core data model shared by every stage of the
// qbool pipeline.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps ir the foundational
// layer with no circular dependencies.
//
// It holds two families of types:
//   - Clauses and queries: Operator, the sealed Clause interface
//     (TermClause, PhraseClause) and the three-bucket Query
//   - The document model: the sealed IRValue interface (IRString, IRInt,
//     IRBool, IRArray, IRObject) that serialized query documents are built
//     from, plus RFC 8785 canonical JSON and content hashing over it
//
// Key design constraints:
//   - NO float types anywhere in documents - use int64 for numbers
//   - Canonical JSON is the only serialization used for hashing and for
//     byte-identical output
//   - All JSON keys use snake_case
package ir
