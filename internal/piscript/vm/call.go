package vm

import "github.com/rolandbrake/piscript/internal/piscript/value"

// numReservedTemps is the count of compiler-fabricated hidden locals
// ($tmp_base, $tmp_key, $tmp_chain) every frame carries with no
// corresponding push instruction in its bytecode; the VM reserves their
// slots directly when it sets up a frame.
const numReservedTemps = 3

const maxFrames = defaultMaxFrames

// call dispatches CALL(argc): the callee sits argc slots below the top of
// the stack, with its arguments above it.
func (vm *VM) call(argc int) error {
	calleeSlot := vm.sp - argc - 1
	callee := vm.stack[calleeSlot]
	if !callee.IsObjKind(value.ObjFunction) {
		return vm.runtimeErr("cannot call a %s", callee.TypeName())
	}
	fn := callee.Obj.(*value.FunctionObj)
	if fn.IsNative {
		return vm.callNative(fn, calleeSlot, argc)
	}
	return vm.callUser(fn, calleeSlot, argc)
}

func (vm *VM) callNative(fn *value.FunctionObj, calleeSlot, argc int) error {
	args := make([]value.Value, argc)
	copy(args, vm.stack[calleeSlot+1:calleeSlot+1+argc])
	for i := calleeSlot; i < vm.sp; i++ {
		vm.stack[i] = value.Nil
	}
	vm.sp = calleeSlot
	result, err := fn.NativeFn(vm, args)
	if err != nil {
		return err
	}
	return vm.push(result)
}

func (vm *VM) callUser(fn *value.FunctionObj, bp, argc int) error {
	if len(vm.frames) >= maxFrames {
		return vm.runtimeErr("stack overflow")
	}
	params := fn.Params
	numParams := len(params)

	raw := make([]value.Value, argc)
	copy(raw, vm.stack[bp+1:bp+1+argc])

	actualsLen := numParams
	if argc > actualsLen {
		actualsLen = argc
	}
	actuals := make([]value.Value, actualsLen)
	for i := 0; i < numParams; i++ {
		switch {
		case i < argc:
			actuals[i] = raw[i]
		case params[i].HasDefault:
			actuals[i] = params[i].Default
		default:
			actuals[i] = value.Nil
		}
	}
	for i := numParams; i < argc; i++ {
		actuals[i] = raw[i]
	}

	this := value.Nil
	if fn.HasThis {
		this = fn.This
	}
	for i := bp; i < vm.sp; i++ {
		vm.stack[i] = value.Nil
	}
	vm.sp = bp
	if err := vm.push(this); err != nil {
		return err
	}
	for i := 0; i < numParams; i++ {
		if err := vm.push(actuals[i]); err != nil {
			return err
		}
	}
	argsList := vm.NewList(actuals)
	if err := vm.push(value.FromObj(argsList)); err != nil {
		return err
	}
	for i := 0; i < numReservedTemps; i++ {
		if err := vm.push(value.Nil); err != nil {
			return err
		}
	}

	vm.frames = append(vm.frames, frame{fn: fn, bp: bp, pc: 0})
	return nil
}

// doReturn pops the return value, closes any upvalues captured from the
// departing frame's locals, unwinds the stack back to the frame's base,
// and restores the caller.
func (vm *VM) doReturn() {
	result := vm.pop()
	f := vm.currentFrame()
	vm.closeUpvaluesFrom(f.bp)
	for i := f.bp; i < vm.sp; i++ {
		vm.stack[i] = value.Nil
	}
	vm.sp = f.bp
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.push(result)
}

// captureUpvalue returns the open upvalue for slot, creating and linking
// one (in descending-Slot order) if none exists yet.
func (vm *VM) captureUpvalue(slot int) *value.UpvalueObj {
	var prev *value.UpvalueObj
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.NextOpen
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}
	u := &value.UpvalueObj{Slot: slot, Open: true, NextOpen: cur}
	vm.track(u)
	if prev == nil {
		vm.openUpvalues = u
	} else {
		prev.NextOpen = u
	}
	return u
}

// closeUpvaluesFrom closes every open upvalue whose Slot is >= threshold,
// copying its live stack value into its own box.
func (vm *VM) closeUpvaluesFrom(threshold int) {
	u := vm.openUpvalues
	for u != nil && u.Slot >= threshold {
		u.Close(vm.stack)
		u = u.NextOpen
	}
	vm.openUpvalues = u
}

// pushClosure instantiates a FunctionObj from a just-loaded Proto constant
// sitting on top of the stack, capturing its upvalues from the current
// frame per the Proto's own UpvalueSpecs.
func (vm *VM) pushClosure() error {
	protoVal := vm.pop()
	code, ok := protoVal.Obj.(value.Code)
	if !ok {
		return vm.runtimeErr("PUSH_CLOSURE operand is not code")
	}
	fn := &value.FunctionObj{Proto: code, Params: code.Params()}
	specs := code.UpvalueSpecs()
	if len(specs) > 0 {
		f := vm.currentFrame()
		fn.Upvalues = make([]*value.UpvalueObj, len(specs))
		for i, spec := range specs {
			if spec.IsLocal {
				fn.Upvalues[i] = vm.captureUpvalue(f.bp + spec.Index)
			} else {
				fn.Upvalues[i] = f.fn.Upvalues[spec.Index]
			}
		}
	}
	vm.track(fn)
	return vm.push(value.FromObj(fn))
}
