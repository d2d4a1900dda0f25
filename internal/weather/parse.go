package weather

import (
	"encoding/json"
	"math"
)

// Info is the part of the payload shown to the user. Nil fields were absent.
type Info struct {
	Temperature *float64
	Humidity    *int64
	Condition   *string
}

// Parse checks the payload structure and extracts Info. Only the "main"
// object and a non-empty "weather" list are required.
func Parse(payload any) (Info, error) {
	data, ok := payload.(map[string]any)
	if !ok {
		return Info{}, &MalformedResponseError{Reason: "expected an object"}
	}

	var info Info

	rawMain, ok := data["main"]
	if !ok {
		return Info{}, &MalformedResponseError{Reason: `missing key "main"`}
	}
	if main, ok := rawMain.(map[string]any); ok {
		info.Temperature = floatField(main, "temp")
		info.Humidity = intField(main, "humidity")
	}

	conditions, ok := data["weather"].([]any)
	if !ok || len(conditions) == 0 {
		return Info{}, &MalformedResponseError{Reason: `missing or empty list "weather"`}
	}
	if first, ok := conditions[0].(map[string]any); ok {
		if description, ok := first["description"].(string); ok {
			info.Condition = &description
		}
	}

	return info, nil
}

func floatField(obj map[string]any, key string) *float64 {
	var v float64
	switch n := obj[key].(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		v = f
	case float64:
		v = n
	default:
		return nil
	}
	return &v
}

func intField(obj map[string]any, key string) *int64 {
	var v int64
	switch n := obj[key].(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, err := n.Float64()
			if err != nil {
				return nil
			}
			return roundToInt(f)
		}
		v = i
	case float64:
		return roundToInt(n)
	default:
		return nil
	}
	return &v
}

// roundToInt returns nil for NaN and values outside the int64 range.
func roundToInt(f float64) *int64 {
	r := math.Round(f)
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return nil
	}
	v := int64(r)
	return &v
}
