package vm

import "github.com/rolandbrake/piscript/internal/piscript/value"

func (vm *VM) pushList(n int) error {
	items := make([]value.Value, n)
	copy(items, vm.stack[vm.sp-n:vm.sp])
	for i := vm.sp - n; i < vm.sp; i++ {
		vm.stack[i] = value.Nil
	}
	vm.sp -= n
	l := vm.NewList(items)
	l.RevalidateNumeric()
	return vm.push(value.FromObj(l))
}

// pushMap builds a map from n key/value pairs sitting on the stack in
// insertion order; any FunctionObj value binds this literal map as its
// bound instance, so the VM's generic slot-0 `this` injection at call time
// lands on the owning map.
func (vm *VM) pushMap(n int) error {
	base := vm.sp - 2*n
	m := vm.NewMap()
	for i := 0; i < n; i++ {
		key := vm.stack[base+2*i]
		val := vm.stack[base+2*i+1]
		if fn, ok := val.Obj.(*value.FunctionObj); ok {
			fn.HasThis = true
			fn.This = value.FromObj(m)
		}
		m.Put(key.AsString(), val)
	}
	for i := base; i < vm.sp; i++ {
		vm.stack[i] = value.Nil
	}
	vm.sp = base
	return vm.push(value.FromObj(m))
}

func (vm *VM) pushRange() error {
	step := vm.pop()
	end := vm.pop()
	start := vm.pop()
	sn, ok1 := start.AsNumber()
	en, ok2 := end.AsNumber()
	pn, ok3 := step.AsNumber()
	if !ok1 || !ok2 || !ok3 {
		return vm.runtimeErr("range bounds must be numeric")
	}
	r, err := vm.NewRange(sn, en, pn)
	if err != nil {
		return err
	}
	return vm.push(value.FromObj(r))
}

func (vm *VM) getItem() error {
	key := vm.pop()
	base := vm.pop()
	v, err := vm.index(base, key)
	if err != nil {
		return err
	}
	return vm.push(v)
}

func (vm *VM) index(base, key value.Value) (value.Value, error) {
	switch o := base.Obj.(type) {
	case *value.ListObj:
		n, ok := key.AsNumber()
		if !ok {
			return value.Nil, vm.runtimeErr("list index must be a number")
		}
		if len(o.Items) == 0 {
			return value.Nil, vm.domainErr("index out of range on an empty list")
		}
		return o.Items[value.GetIndex(int(n), len(o.Items))], nil
	case *value.StringObj:
		n, ok := key.AsNumber()
		if !ok {
			return value.Nil, vm.runtimeErr("string index must be a number")
		}
		runes := []rune(o.String())
		if len(runes) == 0 {
			return value.Nil, vm.domainErr("index out of range on an empty string")
		}
		return value.FromObj(vm.NewString(string(runes[value.GetIndex(int(n), len(runes))]))), nil
	case *value.MapObj:
		v, ok := o.GetChain(key.AsString())
		if !ok {
			return value.Nil, nil
		}
		return v, nil
	default:
		return value.Nil, vm.runtimeErr("cannot index a %s", base.TypeName())
	}
}

func (vm *VM) setItem() error {
	key := vm.pop()
	base := vm.pop()
	v := vm.pop()
	switch o := base.Obj.(type) {
	case *value.ListObj:
		n, ok := key.AsNumber()
		if !ok {
			return vm.runtimeErr("list index must be a number")
		}
		if len(o.Items) == 0 {
			return vm.domainErr("index out of range on an empty list")
		}
		o.Items[value.GetIndex(int(n), len(o.Items))] = v
		o.RevalidateNumeric()
	case *value.MapObj:
		o.Put(key.AsString(), v)
	default:
		return vm.runtimeErr("cannot assign into a %s", base.TypeName())
	}
	return vm.push(v)
}

// pushSlice implements `base[start:end:step]`: nil bounds default to the
// whole-container extent in the direction step moves.
func (vm *VM) pushSlice() error {
	step := vm.pop()
	end := vm.pop()
	start := vm.pop()
	base := vm.pop()

	stepN := 1.0
	if !step.IsNil() {
		n, ok := step.AsNumber()
		if !ok || n == 0 {
			return vm.domainErr("slice step must be a non-zero number")
		}
		stepN = n
	}

	switch o := base.Obj.(type) {
	case *value.ListObj:
		lo, hi := sliceBounds(start, end, len(o.Items), stepN)
		items := gatherSlice(o.Items, lo, hi, stepN)
		l := vm.NewList(items)
		l.RevalidateNumeric()
		return vm.push(value.FromObj(l))
	case *value.StringObj:
		runes := []rune(o.String())
		lo, hi := sliceBounds(start, end, len(runes), stepN)
		var out []rune
		if stepN > 0 {
			for i := lo; i < hi; i += int(stepN) {
				out = append(out, runes[i])
			}
		} else {
			for i := lo; i > hi; i += int(stepN) {
				out = append(out, runes[i])
			}
		}
		return vm.push(value.FromObj(vm.NewString(string(out))))
	default:
		return vm.runtimeErr("cannot slice a %s", base.TypeName())
	}
}

func sliceBounds(start, end value.Value, length int, step float64) (lo, hi int) {
	if step > 0 {
		lo, hi = 0, length
	} else {
		lo, hi = length-1, -1
	}
	if !start.IsNil() {
		if n, ok := start.AsNumber(); ok {
			lo = clampIndex(int(n), length)
		}
	}
	if !end.IsNil() {
		if n, ok := end.AsNumber(); ok {
			hi = clampIndex(int(n), length)
		}
	}
	return lo, hi
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func gatherSlice(items []value.Value, lo, hi int, step float64) []value.Value {
	var out []value.Value
	if step > 0 {
		for i := lo; i < hi; i += int(step) {
			out = append(out, items[i])
		}
	} else {
		for i := lo; i > hi; i += int(step) {
			out = append(out, items[i])
		}
	}
	return out
}
