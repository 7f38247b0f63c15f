package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface representing the values a query document
// may hold. Only IRString, IRInt, IRBool, IRArray, and IRObject implement it.
// There is no float and no null: documents never need them and both break
// byte-identical output.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value. Always int64, never float64.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// IRPair is a key-value pair for typed IRObject construction.
type IRPair struct {
	Key   string
	Value IRValue
}

// O is a shorthand for IRPair.
// Example: Obj(O("match", Obj(O("title", ...))))
func O(key string, value IRValue) IRPair {
	return IRPair{Key: key, Value: value}
}

// Obj creates an IRObject from pairs. Later pairs win on duplicate keys.
func Obj(pairs ...IRPair) IRObject {
	obj := make(IRObject, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// Lookup walks nested objects along path and returns the value found.
// Returns false if any step is missing or not an object.
func (obj IRObject) Lookup(path ...string) (IRValue, bool) {
	var cur IRValue = obj
	for _, key := range path {
		o, ok := cur.(IRObject)
		if !ok {
			return nil, false
		}
		cur, ok = o[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which orders some keys differently.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// MarshalJSON implements json.Marshaler with sorted keys so that
// documents embedded in other JSON (CLI responses) stay deterministic.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range obj.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalIRValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler with the same validation as
// UnmarshalDocument, so JSON responses carrying documents decode back.
func (obj *IRObject) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*obj = nil
		return nil
	}
	doc, err := UnmarshalDocument(data)
	if err != nil {
		return err
	}
	*obj = doc
	return nil
}

// MarshalJSON implements json.Marshaler for IRArray.
func (arr IRArray) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalIRValue(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalIRValue marshals an IRValue to JSON bytes.
// NOTE: This is NOT canonical marshaling. Use MarshalCanonical for output
// that must be byte-identical or hashed.
func MarshalIRValue(v IRValue) ([]byte, error) {
	switch val := v.(type) {
	case IRString:
		return json.Marshal(string(val))
	case IRInt:
		return json.Marshal(int64(val))
	case IRBool:
		return json.Marshal(bool(val))
	case IRArray:
		return val.MarshalJSON()
	case IRObject:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown IRValue type: %T", v)
	}
}

// UnmarshalIRValue decodes JSON into an IRValue with strict validation.
// Floats and null are rejected.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return toIRValue(raw)
}

// UnmarshalDocument decodes a JSON object into an IRObject.
func UnmarshalDocument(data []byte) (IRObject, error) {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(IRObject)
	if !ok {
		return nil, fmt.Errorf("document must be a JSON object, got %T", v)
	}
	return obj, nil
}

// toIRValue recursively converts decoded JSON (or plain Go values) into an IRValue.
func toIRValue(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in documents")
	case IRValue:
		return val, nil
	case bool:
		return IRBool(val), nil
	case string:
		return IRString(val), nil
	case int:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("floats are forbidden in documents: %s", val)
		}
		return IRInt(n), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in documents: %v", val)
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
