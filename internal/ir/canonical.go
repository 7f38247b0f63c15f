package ir

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON.
// CRITICAL: This is the ONLY serialization used for document output and
// content-addressed hashing; identical documents always produce identical bytes.
//
// Key differences from standard json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. U+2028 and U+2029 are written literally
//  4. Object keys are NFC normalized; string values are written verbatim
//  5. No floats, no null and no invalid UTF-8 (returns error)
func MarshalCanonical(v any) ([]byte, error) {
	irv, err := toIRValue(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, irv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v IRValue) error {
	switch val := v.(type) {
	case IRString:
		if err := writeCanonicalString(buf, string(val)); err != nil {
			return err
		}
	case IRInt:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case IRBool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case IRArray:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case IRObject:
		keys, err := canonicalKeys(val)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k.normalized); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k.raw]); err != nil {
				return fmt.Errorf("value for key %q: %w", k.raw, err)
			}
		}
		buf.WriteByte('}')
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

type objectKey struct {
	raw        string
	normalized string
}

// canonicalKeys returns the keys of obj with their NFC forms, sorted by
// UTF-16 code units of the NFC form.
func canonicalKeys(obj IRObject) ([]objectKey, error) {
	keys := make([]objectKey, 0, len(obj))
	for k := range obj {
		keys = append(keys, objectKey{raw: k, normalized: norm.NFC.String(k)})
	}
	slices.SortFunc(keys, func(a, b objectKey) int {
		return compareUTF16(a.normalized, b.normalized)
	})
	for i := 1; i < len(keys); i++ {
		if keys[i].normalized == keys[i-1].normalized {
			return nil, fmt.Errorf("keys %q and %q are equal after NFC normalization", keys[i-1].raw, keys[i].raw)
		}
	}
	return keys, nil
}

// writeCanonicalString writes s as an RFC 8785 string literal.
// Only the quote, the backslash and control characters (U+0000-U+001F)
// are escaped; everything else is copied byte for byte.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	const hex = "0123456789abcdef"

	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8 in string %q", s)
	}

	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r < 0x20:
			buf.WriteString(`\u00`)
			buf.WriteByte(hex[r>>4])
			buf.WriteByte(hex[r&0xF])
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return nil
}
