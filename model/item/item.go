package item

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Collection is an ordered, multi-valued, case-insensitive attribute container.
// Every name maps to an ordered sequence of values; nil values are never stored.
// A Collection is not safe for concurrent mutation.
type Collection struct {
	names []string
	items map[string][]interface{}
}

// Get returns a copy of the values stored under name, or an empty slice.
func (c *Collection) Get(name string) []interface{} {
	values := c.items[Key(name)]
	ret := make([]interface{}, len(values))
	copy(ret, values)
	return ret
}

// Value returns the first value stored under name or nil.
func (c *Collection) Value(name string) interface{} {
	values := c.items[Key(name)]
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// Has returns true if name is present, even with an empty sequence.
func (c *Collection) Has(name string) bool {
	_, ok := c.items[Key(name)]
	return ok
}

// Set replaces the values of name. A nil value, typed nil included, removes
// the name; a slice is
// stored element-wise with nil elements stripped. Values that cannot be
// durably represented remove the name as well.
func (c *Collection) Set(name string, value interface{}) *Collection {
	key := Key(name)
	if key == "" {
		return c
	}
	if isNil(value) {
		c.Remove(key)
		return c
	}
	if !Durable(value) {
		zap.L().Warn("item: rejected value", zap.String("name", key), zap.String("type", fmt.Sprintf("%T", value)))
		c.Remove(key)
		return c
	}
	c.put(key, normalize(value))
	return c
}

// Append adds values to the end of the sequence stored under name.
func (c *Collection) Append(name string, value interface{}) *Collection {
	key := Key(name)
	if key == "" || isNil(value) {
		return c
	}
	if !Durable(value) {
		zap.L().Warn("item: rejected value", zap.String("name", key), zap.String("type", fmt.Sprintf("%T", value)))
		return c
	}
	values := append(c.items[key], normalize(value)...)
	c.put(key, values)
	return c
}

// Remove deletes name.
func (c *Collection) Remove(name string) {
	key := Key(name)
	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, candidate := range c.names {
		if candidate == key {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

// Names returns attribute names in first-insertion order.
func (c *Collection) Names() []string {
	ret := make([]string, len(c.names))
	copy(ret, c.names)
	return ret
}

// Len returns number of attributes.
func (c *Collection) Len() int {
	return len(c.names)
}

// Clone returns a copy with independent value sequences.
func (c *Collection) Clone() *Collection {
	return c.CloneItems()
}

// CloneItems returns a copy restricted to names, or a full copy when no name is given.
func (c *Collection) CloneItems(names ...string) *Collection {
	ret := New()
	if len(names) == 0 {
		names = c.names
	}
	for _, name := range names {
		key := Key(name)
		values, ok := c.items[key]
		if !ok {
			continue
		}
		cloned := make([]interface{}, len(values))
		copy(cloned, values)
		ret.put(key, cloned)
	}
	return ret
}

// Merge copies attributes of other that are absent in c.
func (c *Collection) Merge(other *Collection) *Collection {
	if other == nil {
		return c
	}
	for _, name := range other.names {
		if c.Has(name) {
			continue
		}
		c.put(name, other.Get(name))
	}
	return c
}

// Replace copies every attribute of other into c, overriding existing values.
func (c *Collection) Replace(other *Collection) *Collection {
	if other == nil {
		return c
	}
	for _, name := range other.names {
		c.put(name, other.Get(name))
	}
	return c
}

// Map returns a detached name to values map.
func (c *Collection) Map() map[string][]interface{} {
	ret := make(map[string][]interface{}, len(c.items))
	for _, name := range c.names {
		ret[name] = c.Get(name)
	}
	return ret
}

func (c *Collection) put(key string, values []interface{}) {
	if _, ok := c.items[key]; !ok {
		c.names = append(c.names, key)
	}
	c.items[key] = values
}

// Key normalizes an attribute name.
func Key(name string) string {
	return strings.ToLower(name)
}

func normalize(value interface{}) []interface{} {
	switch actual := value.(type) {
	case []interface{}:
		return compact(actual)
	case []byte:
		return compact([]interface{}{actual})
	case *Collection:
		return []interface{}{actual}
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		ret := make([]interface{}, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			ret = append(ret, v.Index(i).Interface())
		}
		return compact(ret)
	}
	return compact([]interface{}{value})
}

func compact(values []interface{}) []interface{} {
	ret := make([]interface{}, 0, len(values))
	for _, value := range values {
		if isNil(value) {
			continue
		}
		ret = append(ret, value)
	}
	return ret
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Durable returns false for values holding functions, channels, unsafe
// pointers or complex numbers, which have no persistent representation.
func Durable(value interface{}) bool {
	return durable(reflect.ValueOf(value), 0)
}

var timeType = reflect.TypeOf(time.Time{})

func durable(v reflect.Value, depth int) bool {
	if !v.IsValid() {
		return true
	}
	if depth > 32 {
		return false
	}
	switch v.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Uintptr, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return durable(v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !durable(v.Index(i), depth+1) {
				return false
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if !durable(iter.Key(), depth+1) || !durable(iter.Value(), depth+1) {
				return false
			}
		}
	case reflect.Struct:
		if v.Type() == timeType {
			return true
		}
		for i := 0; i < v.NumField(); i++ {
			if !durable(v.Field(i), depth+1) {
				return false
			}
		}
	}
	return true
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{items: map[string][]interface{}{}}
}

// NewFrom creates a collection from name/value pairs; map iteration order is
// not preserved, use Set for ordered construction.
func NewFrom(values map[string]interface{}) *Collection {
	ret := New()
	for name, value := range values {
		ret.Set(name, value)
	}
	return ret
}
