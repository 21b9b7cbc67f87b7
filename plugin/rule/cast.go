package rule

import (
	"fmt"
	"math"

	"github.com/dop251/goja"
	"github.com/viant/bpmflow/model/item"
)

// castInt converts a numeric script value to an int truncated toward zero;
// undefined and null yield nil.
func castInt(name string, value goja.Value) (*int, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, nil
	}
	f, ok := item.ToFloat(value.Export())
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &ScriptError{Kind: KindType, Message: fmt.Sprintf("%v: %q is not numeric", name, value.String())}
	}
	ret, ok := item.TruncateInt(f)
	if !ok {
		return nil, &ScriptError{Kind: KindType, Message: fmt.Sprintf("%v: %v is out of range", name, value.String())}
	}
	return &ret, nil
}
