// README: Tagged-variant JSON values and the coercion rules applied to them.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The model's output is only approximately typed: a field declared as a
// string may arrive as a number, an array, or a nested object. Instead of
// sniffing shapes at use sites, raw JSON is decoded once into an explicit
// variant tree and every coercion is a match over the variant tag.

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

type rawField struct {
	key string
	val rawValue
}

type rawValue struct {
	kind kind
	str  string
	num  float64
	b    bool
	arr  []rawValue
	// fields keeps document order; object coercion joins values in the
	// order they appear in the payload, not by key name.
	fields []rawField
}

var missing = rawValue{kind: kindNull}

// field looks up a key on an object value. Any other variant has no
// fields, so lookups on it simply report absence.
func (v rawValue) field(key string) (rawValue, bool) {
	if v.kind != kindObject {
		return missing, false
	}
	for _, f := range v.fields {
		if f.key == key {
			return f.val, true
		}
	}
	return missing, false
}

// parseRaw decodes one JSON value into a variant tree. A token-level walk
// is required because encoding/json maps discard object key order.
func parseRaw(data []byte) (rawValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return missing, err
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (rawValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return missing, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (rawValue, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := rawValue{kind: kindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return missing, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return missing, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return missing, err
				}
				obj.fields = append(obj.fields, rawField{key: key, val: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return missing, err
			}
			return obj, nil
		case '[':
			arrVal := rawValue{kind: kindArray}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return missing, err
				}
				arrVal.arr = append(arrVal.arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return missing, err
			}
			return arrVal, nil
		}
		return missing, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return rawValue{kind: kindString, str: t}, nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return missing, err
		}
		return rawValue{kind: kindNumber, num: n}, nil
	case bool:
		return rawValue{kind: kindBool, b: t}, nil
	case nil:
		return rawValue{kind: kindNull}, nil
	}
	return missing, fmt.Errorf("unexpected token %v", tok)
}

// formatNumber renders a number the way a JS client would stringify it:
// integral values carry no decimal point.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// asString coerces any variant down to one string. Arrays join their
// coerced elements with ", "; objects join their field values with " " in
// document order; booleans and null degrade to "".
func asString(v rawValue) string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return formatNumber(v.num)
	case kindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = asString(e)
		}
		return strings.Join(parts, ", ")
	case kindObject:
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = asString(f.val)
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// asStringList coerces to a list of strings: arrays map element-wise, a
// bare string wraps into a singleton, anything else is an empty list.
func asStringList(v rawValue) []string {
	switch v.kind {
	case kindArray:
		out := make([]string, len(v.arr))
		for i, e := range v.arr {
			out[i] = asString(e)
		}
		return out
	case kindString:
		return []string{v.str}
	}
	return []string{}
}

// asNumber accepts numbers and numeric strings ("3" counts as 3).
func asNumber(v rawValue) (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
