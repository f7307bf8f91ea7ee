package jsonutil

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleString renders a JSON scalar as text. Record stores hand out
// ids as numbers or strings depending on the column type, so both are
// accepted. Numbers keep their literal digits, which avoids float64
// rounding of large bigserial ids. Returns empty string for null/empty.
func FlexibleString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	// Try string first
	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	// Try number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var numVal json.Number
	if err := dec.Decode(&numVal); err == nil {
		return numVal.String()
	}

	// Try boolean
	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return strconv.FormatBool(boolVal)
	}

	// Fallback: return raw string representation
	return string(raw)
}
