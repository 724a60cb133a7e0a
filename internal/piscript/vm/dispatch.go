package vm

import (
	"github.com/rolandbrake/piscript/internal/piscript/compiler"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

func (vm *VM) readByte(f *frame) byte {
	b := f.code()[f.pc]
	f.pc++
	return b
}

func (vm *VM) readU16(f *frame) uint16 {
	code := f.code()
	v := uint16(code[f.pc])<<8 | uint16(code[f.pc+1])
	f.pc += 2
	return v
}

func (vm *VM) readI16(f *frame) int16 {
	return int16(vm.readU16(f))
}

// Run executes proto as the program's implicit top-level function and
// drives the dispatch loop until HALT, a RETURN unwinds past the last
// frame, or an instruction reports an error.
func (vm *VM) Run(proto value.Code) error {
	vm.running.Store(true)
	defer vm.running.Store(false)

	top := &value.FunctionObj{Name: "<main>", Proto: proto}
	vm.track(top)
	vm.sp = 0
	vm.frames = append(vm.frames[:0], frame{fn: top, bp: 0, pc: 0})
	for i := 0; i < numReservedTemps; i++ {
		if err := vm.push(value.Nil); err != nil {
			return err
		}
	}
	return vm.dispatch()
}

func (vm *VM) dispatch() error {
	for len(vm.frames) > 0 {
		if !vm.running.Load() {
			return vm.runtimeErr("execution cancelled")
		}

		f := vm.currentFrame()
		code := f.code()
		opOff := f.pc
		op := compiler.Op(code[opOff])
		f.pc++
		vm.lastLine, vm.lastCol = f.fn.Proto.PosAt(opOff)

		if err := vm.step(f, op); err != nil {
			return err
		}
		if op == compiler.OpHalt {
			return nil
		}

		vm.MaybeCollect()
	}
	return nil
}

func (vm *VM) step(f *frame, op compiler.Op) error {
	switch op {
	case compiler.OpLoadConst:
		idx := vm.readU16(f)
		return vm.push(f.fn.Proto.ConstPool()[idx])
	case compiler.OpLoadGlobal:
		idx := vm.readByte(f)
		name := f.fn.Proto.GlobalNames()[idx]
		v, ok := vm.globals[name]
		if !ok {
			return vm.runtimeErr("undefined global %q", name)
		}
		return vm.push(v)
	case compiler.OpStoreGlobal:
		idx := vm.readByte(f)
		name := f.fn.Proto.GlobalNames()[idx]
		vm.globals[name] = vm.pop()
		return nil
	case compiler.OpLoadLocal:
		idx := vm.readByte(f)
		return vm.push(vm.stack[f.bp+int(idx)])
	case compiler.OpStoreLocal:
		idx := vm.readByte(f)
		vm.stack[f.bp+int(idx)] = vm.pop()
		return nil
	case compiler.OpLoadUpvalue:
		idx := vm.readByte(f)
		return vm.push(f.fn.Upvalues[idx].Get(vm.stack))
	case compiler.OpStoreUpvalue:
		idx := vm.readByte(f)
		f.fn.Upvalues[idx].Set(vm.stack, vm.pop())
		return nil
	case compiler.OpPushNil:
		return vm.push(value.Nil)
	case compiler.OpDupTop:
		return vm.push(vm.peek(0))
	case compiler.OpPop:
		vm.pop()
		return nil
	case compiler.OpPopN:
		n := int(vm.readByte(f))
		for i := vm.sp - n; i < vm.sp; i++ {
			vm.stack[i] = value.Nil
		}
		vm.sp -= n
		return nil
	case compiler.OpJump:
		off := vm.readI16(f)
		f.pc += int(off)
		return nil
	case compiler.OpJumpIfTrue:
		off := vm.readI16(f)
		if vm.peek(0).AsBool() {
			f.pc += int(off)
		}
		return nil
	case compiler.OpJumpIfFalse:
		off := vm.readI16(f)
		if !vm.peek(0).AsBool() {
			f.pc += int(off)
		}
		return nil
	case compiler.OpCall:
		argc := int(vm.readByte(f))
		return vm.call(argc)
	case compiler.OpReturn:
		vm.doReturn()
		return nil
	case compiler.OpHalt:
		vm.frames = vm.frames[:len(vm.frames)-1]
		return nil
	case compiler.OpBinary:
		return vm.binary(compiler.BinOp(vm.readByte(f)))
	case compiler.OpCompare:
		return vm.compare(compiler.CompareOp(vm.readByte(f)))
	case compiler.OpUnary:
		return vm.unary(compiler.UnaryOp(vm.readByte(f)))
	case compiler.OpPushList:
		n := int(vm.readU16(f))
		return vm.pushList(n)
	case compiler.OpPushMap:
		n := int(vm.readU16(f))
		return vm.pushMap(n)
	case compiler.OpPushRange:
		return vm.pushRange()
	case compiler.OpPushSlice:
		return vm.pushSlice()
	case compiler.OpGetItem:
		return vm.getItem()
	case compiler.OpSetItem:
		return vm.setItem()
	case compiler.OpPushIter:
		return vm.pushIter()
	case compiler.OpPopIter:
		vm.popIter()
		return nil
	case compiler.OpLoop:
		off := vm.readI16(f)
		cont, err := vm.loopStep()
		if err != nil {
			return err
		}
		if !cont {
			f.pc += int(off)
		}
		return nil
	case compiler.OpPushFunction:
		n := vm.readByte(f)
		return vm.pushFunction(int(n))
	case compiler.OpPushClosure:
		vm.readU16(f) // packed params<<8|upvalues: redundant with the Proto itself
		return vm.pushClosure()
	case compiler.OpCloseUpvalue:
		rel := int(vm.readByte(f))
		vm.closeUpvaluesFrom(f.bp + rel)
		return nil
	case compiler.OpNoOp:
		return nil
	case compiler.OpDebug:
		vm.readByte(f)
		return nil
	case compiler.OpPrint:
		v := vm.pop()
		return vm.print(v)
	default:
		return vm.runtimeErr("unknown opcode %d", byte(op))
	}
}

func (vm *VM) pushFunction(numParams int) error {
	protoVal := vm.pop()
	code, ok := protoVal.Obj.(value.Code)
	if !ok {
		return vm.runtimeErr("PUSH_FUNCTION operand is not code")
	}
	fn := &value.FunctionObj{Proto: code, Params: code.Params()}
	vm.track(fn)
	return vm.push(value.FromObj(fn))
}
