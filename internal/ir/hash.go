package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDocument = "qbool/document/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentHash computes the content-addressed identity of a query document.
// Two queries that compile to the same document share a hash, e.g.
// "a  b" and "a b".
func DocumentHash(doc IRObject) (string, error) {
	canonical, err := MarshalCanonical(doc)
	if err != nil {
		return "", fmt.Errorf("DocumentHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}

// MustDocumentHash is like DocumentHash but panics on error.
// Use only in tests or when the document is known to be valid.
func MustDocumentHash(doc IRObject) string {
	hash, err := DocumentHash(doc)
	if err != nil {
		panic(err)
	}
	return hash
}
