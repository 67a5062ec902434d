package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// FlexID accepts either a JSON number or a JSON string, since clients send
// item and product ids both ways.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("id must be a number or a string")
	}
	*f = FlexID(normalizeNumber(n))
	return nil
}

// normalizeNumber spells integral values the way JavaScript would, so 5, 5.0
// and 5e0 all name the same id. Plain integer literals are kept verbatim.
func normalizeNumber(n json.Number) string {
	raw := n.String()
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return raw
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || v != math.Trunc(v) {
		return raw
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f FlexID) String() string {
	return string(f)
}

// Int parses the id as a base-10 integer.
func (f FlexID) Int() (int, error) {
	return strconv.Atoi(string(f))
}
