package vm

import "github.com/rolandbrake/piscript/internal/piscript/iterator"

// pushIter pops the just-evaluated source expression and pushes a fresh
// iterator frame, leaving nothing on the operand stack; PUSH_ITER always
// precedes the loop header a `for` statement compiles.
func (vm *VM) pushIter() error {
	src := vm.pop()
	it, ok := iterator.New(src, vm.NewString)
	if !ok {
		return vm.runtimeErr("cannot iterate over a %s", src.TypeName())
	}
	vm.iterStack = append(vm.iterStack, iterFrame{src: src, it: it})
	return nil
}

// popIter discards the innermost iterator frame, run when a `for` loop
// exits (normally, via break, or by falling through LOOP's exhaustion
// branch).
func (vm *VM) popIter() {
	vm.iterStack = vm.iterStack[:len(vm.iterStack)-1]
}

// loopStep drives OpLoop: if the innermost iterator has another value, it
// is pushed (for the following STORE_LOCAL to bind) and loopStep reports
// true to continue falling through into the loop body; otherwise it
// reports false so the dispatch loop takes the jump to the loop's exit.
func (vm *VM) loopStep() (bool, error) {
	top := &vm.iterStack[len(vm.iterStack)-1]
	if !top.it.HasNext() {
		return false, nil
	}
	v, ok := top.it.Next()
	if !ok {
		return false, nil
	}
	if err := vm.push(v); err != nil {
		return false, err
	}
	return true, nil
}
