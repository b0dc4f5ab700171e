package signal

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Truthy coerces an arbitrary metadata value to a boolean. The function is
// total and documented so that behavior is reproducible across adapters:
// nil is false; booleans are themselves; numbers are true when nonzero;
// strings are true when non-empty; slices, maps and arrays are true when
// non-empty; any other non-nil value is true.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	}

	// Containers decoded from JSON/YAML land here.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface())
	default:
		return true
	}
}

// Count coerces an arbitrary value to a non-negative integer count.
// Negative values clamp to 0. Numeric strings parse (decimal floats
// truncate). Booleans count as 0 or 1. Anything else is uncoercible.
func Count(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case int:
		return clampCount(int64(t)), nil
	case int8:
		return clampCount(int64(t)), nil
	case int16:
		return clampCount(int64(t)), nil
	case int32:
		return clampCount(int64(t)), nil
	case int64:
		return clampCount(t), nil
	case uint:
		if uint64(t) > uint64(math.MaxInt) {
			return math.MaxInt, nil
		}
		return int(t), nil
	case uint8:
		return int(t), nil
	case uint16:
		return int(t), nil
	case uint32:
		return int(t), nil
	case uint64:
		if t > uint64(math.MaxInt) {
			return math.MaxInt, nil
		}
		return int(t), nil
	case float32:
		return clampCount(int64(t)), nil
	case float64:
		return clampCount(int64(t)), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return clampCount(n), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return clampCount(int64(f)), nil
		}
		return 0, fmt.Errorf("%w: non-numeric string %q", ErrUncoercible, t)
	default:
		return 0, fmt.Errorf("%w: %T", ErrUncoercible, v)
	}
}

func clampCount(n int64) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
