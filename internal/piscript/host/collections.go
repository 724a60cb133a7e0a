package host

import (
	"github.com/rolandbrake/piscript/internal/piscript/langerr"
	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func wrongType(want, name string) error {
	return langerr.New(langerr.RuntimeType, 0, 0, "%s expects a %s argument", name, want)
}

func asList(v value.Value) (*value.ListObj, bool) {
	if !v.IsObjKind(value.ObjList) {
		return nil, false
	}
	return v.Obj.(*value.ListObj), true
}

func asMap(v value.Value) (*value.MapObj, bool) {
	if !v.IsObjKind(value.ObjMap) {
		return nil, false
	}
	return v.Obj.(*value.MapObj), true
}

func registerCollections(m *vm.VM) {
	m.RegisterNative("push", 2, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "push")
		}
		l.Push(args[1])
		return args[0], nil
	})
	m.RegisterNative("pop", 1, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "pop")
		}
		v, _ := l.Pop()
		return v, nil
	})
	m.RegisterNative("prepend", 2, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "prepend")
		}
		l.Prepend(args[1])
		return args[0], nil
	})
	m.RegisterNative("insert_at", 3, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "insert_at")
		}
		l.InsertAt(argInt(args, 1), args[2])
		return args[0], nil
	})
	m.RegisterNative("remove_at", 2, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "remove_at")
		}
		v, _ := l.RemoveAt(argInt(args, 1))
		return v, nil
	})
	m.RegisterNative("clone", 1, func(h any, args []value.Value) (value.Value, error) {
		switch {
		case args[0].IsObjKind(value.ObjList):
			return value.FromObj(args[0].Obj.(*value.ListObj).Clone()), nil
		case args[0].IsObjKind(value.ObjMap):
			return value.FromObj(args[0].Obj.(*value.MapObj).Clone()), nil
		default:
			return value.Nil, wrongType("list or map", "clone")
		}
	})
	m.RegisterNative("keys", 1, func(h any, args []value.Value) (value.Value, error) {
		mp, ok := asMap(args[0])
		if !ok {
			return value.Nil, wrongType("map", "keys")
		}
		vm := asVM(h)
		return value.FromObj(vm.NewList(mp.Keys())), nil
	})
	m.RegisterNative("values", 1, func(h any, args []value.Value) (value.Value, error) {
		mp, ok := asMap(args[0])
		if !ok {
			return value.Nil, wrongType("map", "values")
		}
		vm := asVM(h)
		return value.FromObj(vm.NewList(mp.Values())), nil
	})
	m.RegisterNative("has_key", 2, func(h any, args []value.Value) (value.Value, error) {
		mp, ok := asMap(args[0])
		if !ok {
			return value.Nil, wrongType("map", "has_key")
		}
		_, found := mp.GetChain(args[1].AsString())
		return value.Bool(found), nil
	})
	m.RegisterNative("delete", 2, func(h any, args []value.Value) (value.Value, error) {
		mp, ok := asMap(args[0])
		if !ok {
			return value.Nil, wrongType("map", "delete")
		}
		return value.Bool(mp.Delete(args[1].AsString())), nil
	})
}
