package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
)

// ValidateResponse checks that a decoded API payload is an object holding a
// "homeworks" array and converts it into a typed Response.
func ValidateResponse(payload any) (*Response, error) {
	envelope, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrShape, typeName(payload))
	}

	raw, ok := envelope[keyHomeworks]
	if !ok {
		return nil, fmt.Errorf("%w: key %q is missing", ErrShape, keyHomeworks)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q expected array, got %s", ErrShape, keyHomeworks, typeName(raw))
	}

	resp := &Response{Homeworks: make([]Record, 0, len(list))}
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] expected object, got %s", ErrShape, keyHomeworks, i, typeName(item))
		}
		resp.Homeworks = append(resp.Homeworks, Record(rec))
	}

	resp.CurrentDate, resp.HasCurrentDate = unixSeconds(envelope[keyCurrentDate])
	return resp, nil
}

// unixSeconds accepts both json.Number (decoder with UseNumber) and float64.
func unixSeconds(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
