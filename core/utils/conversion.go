package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ToNumber converts numeric values to an exact big.Float using explicit type
// switching. Integers keep every bit, so values above 2^53 stay distinct.
// The second result is false for anything that is not a Go number or a
// json.Number, and for NaN.
func ToNumber(val any) (*big.Float, bool) {
	switch v := val.(type) {
	case int:
		return new(big.Float).SetInt64(int64(v)), true
	case int64:
		return new(big.Float).SetInt64(v), true
	case int32:
		return new(big.Float).SetInt64(int64(v)), true
	case int16:
		return new(big.Float).SetInt64(int64(v)), true
	case int8:
		return new(big.Float).SetInt64(int64(v)), true
	case uint:
		return new(big.Float).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Float).SetUint64(v), true
	case uint32:
		return new(big.Float).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Float).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Float).SetUint64(uint64(v)), true
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return new(big.Float).SetInt64(i), true
		}
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return new(big.Float).SetUint64(u), true
		}
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, false
		}
		return fromFloat(f)
	default:
		return nil, false
	}
}

func fromFloat(f float64) (*big.Float, bool) {
	if math.IsNaN(f) {
		return nil, false
	}
	return new(big.Float).SetFloat64(f), true
}

// ToString converts various types to string.
// Integers are formatted exactly. Floats with no fractional part render
// without a decimal point so that ids scanned from JSON and from SQL agree.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return numberString(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numberString keeps integer literals as written and renders other numbers
// the way a decoded float64 would be.
func numberString(n json.Number) string {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	if f, err := strconv.ParseFloat(string(n), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(n)
}
