package rule

import (
	"github.com/dop251/goja"
	"github.com/viant/bpmflow/model/item"
)

// liveView exposes a collection to scripts; writes go straight to it.
type liveView struct {
	collection *item.Collection
}

func (v *liveView) object(vm *goja.Runtime) *goja.Object {
	return bindCollection(vm, v.collection)
}

// snapshotView exposes a private copy of a collection; writes never reach the
// source collection.
type snapshotView struct {
	snapshot *item.Collection
}

func (v *snapshotView) object(vm *goja.Runtime) *goja.Object {
	return bindCollection(vm, v.snapshot)
}

func newSnapshotView(source *item.Collection) *snapshotView {
	return &snapshotView{snapshot: source.Clone()}
}

func bindCollection(vm *goja.Runtime, collection *item.Collection) *goja.Object {
	ret := vm.NewObject()
	_ = ret.Set("get", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !collection.Has(name) {
			return goja.Null()
		}
		return vm.ToValue(collection.Get(name))
	})
	_ = ret.Set("put", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		value := call.Argument(1)
		if goja.IsUndefined(value) || goja.IsNull(value) {
			collection.Remove(name)
			return goja.Undefined()
		}
		collection.Set(name, value.Export())
		return goja.Undefined()
	})
	_ = ret.Set("has", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(collection.Has(call.Argument(0).String()))
	})
	_ = ret.Set("remove", func(call goja.FunctionCall) goja.Value {
		collection.Remove(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = ret.Set("names", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(collection.Names())
	})
	return ret
}

// isIdentifier reports whether name can be referenced as a script variable.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
