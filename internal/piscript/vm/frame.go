package vm

import "github.com/rolandbrake/piscript/internal/piscript/value"

// frame is one activation record: the executing closure, its base pointer
// into the shared operand stack (slot 0 is `this`), and its own program
// counter into the closure's bytecode.
type frame struct {
	fn *value.FunctionObj
	bp int
	pc int
}

func (f *frame) code() []byte { return f.fn.Proto.Bytecode() }

func (vm *VM) currentFrame() *frame { return &vm.frames[len(vm.frames)-1] }
