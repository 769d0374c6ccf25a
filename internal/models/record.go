package models

import (
	"encoding/json"
	"math/big"
	"strconv"
)

// FieldID is the identifier key every stored record carries.
const FieldID = "id"

// Record is one stored entity. Declared fields live next to whatever extra
// fields the client submitted; both are written back verbatim.
type Record map[string]any

// ID returns the canonical string form of the record identifier.
func (r Record) ID() string {
	return NormalizeID(r[FieldID])
}

// Clone returns a shallow copy so a mutation never leaks into a loaded
// snapshot before it is saved.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every field from patch into r, except the identifier.
func (r Record) Merge(patch map[string]any) {
	for k, v := range patch {
		if k == FieldID {
			continue
		}
		r[k] = v
	}
}

// NormalizeID converts an identifier that may have been decoded as a JSON
// number into the string used for comparisons, so 1, 1.0, 1e0 and "1" all
// match.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return canonicalNumber(id.String())
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

// CloneAll copies a snapshot record by record.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// canonicalNumber spells integral numbers in plain decimal. Anything else is
// returned as written.
func canonicalNumber(s string) string {
	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() {
		return s
	}
	return r.Num().String()
}
