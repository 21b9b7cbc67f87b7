package item

import (
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/viant/toolbox"
)

// String returns the first value as text or "".
func (c *Collection) String(name string) string {
	value := c.Value(name)
	if value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return toolbox.AsString(value)
}

// Strings returns all values as text.
func (c *Collection) Strings(name string) []string {
	values := c.items[Key(name)]
	ret := make([]string, 0, len(values))
	for _, value := range values {
		ret = append(ret, toolbox.AsString(value))
	}
	return ret
}

// Int returns the first value truncated toward zero, or 0 when it is not
// numeric or out of int range.
func (c *Collection) Int(name string) int {
	f, _ := ToFloat(c.Value(name))
	ret, _ := TruncateInt(f)
	return ret
}

// Int64 returns the first value truncated toward zero, or 0 when it is not
// numeric or out of int64 range.
func (c *Collection) Int64(name string) int64 {
	f, ok := ToFloat(c.Value(name))
	if !ok {
		return 0
	}
	ret, _ := TruncateInt64(f)
	return ret
}

// TruncateInt64 truncates f toward zero; false is returned for NaN, infinity
// and values outside the int64 range.
func TruncateInt64(f float64) (int64, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt64 || t >= -math.MinInt64 {
		return 0, false
	}
	return int64(t), true
}

// TruncateInt truncates f toward zero; false is returned for NaN, infinity
// and values outside the int range.
func TruncateInt(f float64) (int, bool) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt || t >= -float64(math.MinInt) {
		return 0, false
	}
	return int(t), true
}

// Float64 returns the first value as float64 or 0.
func (c *Collection) Float64(name string) float64 {
	f, _ := ToFloat(c.Value(name))
	return f
}

// Float32 returns the first value as float32 or 0.
func (c *Collection) Float32(name string) float32 {
	return float32(c.Float64(name))
}

// Bool returns true only for a true bool or a case-insensitive "true" text.
func (c *Collection) Bool(name string) bool {
	switch actual := c.Value(name).(type) {
	case nil:
		return false
	case bool:
		return actual
	case string:
		return strings.EqualFold(strings.TrimSpace(actual), "true")
	default:
		return strings.EqualFold(toolbox.AsString(actual), "true")
	}
}

// Time returns the first value when it is a time, otherwise nil.
func (c *Collection) Time(name string) *time.Time {
	switch actual := c.Value(name).(type) {
	case time.Time:
		return &actual
	case *time.Time:
		ts := *actual
		return &ts
	}
	return nil
}

// ToFloat converts numeric values, arbitrary precision numbers and numeric
// text to float64.
func ToFloat(value interface{}) (float64, bool) {
	switch actual := value.(type) {
	case nil:
		return 0, false
	case float64:
		return actual, true
	case int:
		return float64(actual), true
	case int64:
		return float64(actual), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(actual).Float64()
		return f, true
	case *big.Float:
		f, _ := actual.Float64()
		return f, true
	case *big.Rat:
		f, _ := actual.Float64()
		return f, true
	case string:
		f, err := toolbox.ToFloat(strings.TrimSpace(actual))
		return f, err == nil
	case bool, time.Time, *time.Time:
		return 0, false
	}
	f, err := toolbox.ToFloat(value)
	return f, err == nil
}
