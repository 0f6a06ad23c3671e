package report

import (
	"encoding/json"
	"fmt"
)

// RawKind discriminates the shapes a stored record can arrive in. The
// store's serialization convention is inconsistent: a collection element
// may be a proper object, a JSON-encoded string of one, a bare string, or
// something else entirely. Classification happens once, here, so the rest
// of the pipeline never inspects types.
type RawKind int

const (
	// RawStructured is an object with named fields.
	RawStructured RawKind = iota
	// RawEncodedText is a string that parses as a JSON object.
	RawEncodedText
	// RawPlainText is a string that does not parse as JSON.
	RawPlainText
	// RawOther is any remaining type (number, bool, nested array, null).
	RawOther
)

// RawRecord is a stored collection element resolved to exactly one variant.
type RawRecord struct {
	Kind   RawKind
	Fields map[string]any // set for RawStructured and RawEncodedText
	Text   string         // set for RawPlainText; original string for RawEncodedText
	Value  any            // set for RawOther
}

// classifyRaw resolves one stored element to its RawRecord variant.
func classifyRaw(v any) RawRecord {
	switch t := v.(type) {
	case map[string]any:
		return RawRecord{Kind: RawStructured, Fields: t}
	case string:
		var fields map[string]any
		if err := json.Unmarshal([]byte(t), &fields); err == nil {
			return RawRecord{Kind: RawEncodedText, Fields: fields, Text: t}
		}
		return RawRecord{Kind: RawPlainText, Text: t}
	default:
		return RawRecord{Kind: RawOther, Value: v}
	}
}

// asString renders an arbitrary value the way the store's own clients
// would display it: strings pass through, everything else via Sprint.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// serializeFields is the last-resort content extractor: the whole record,
// JSON-encoded.
func serializeFields(fields map[string]any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprint(fields)
	}
	return string(data)
}
