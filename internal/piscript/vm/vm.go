// Package vm implements PiScript's bytecode interpreter: a single-threaded
// stack machine with call frames, closures over upvalues, iterators, and a
// cooperating tracing collector.
package vm

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/rolandbrake/piscript/internal/piscript/gc"
	"github.com/rolandbrake/piscript/internal/piscript/iterator"
	"github.com/rolandbrake/piscript/internal/piscript/langerr"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// StackSize is the fixed operand stack capacity; the data model requires
// at least 1024 for non-trivial programs.
const StackSize = 65536

const defaultMaxFrames = 1024

// Screen is the capability surface host drawing functions mutate; the
// screen package supplies a pixel/pixelgl-backed implementation.
type Screen interface {
	SetPixel(x, y, index int)
	SetPixelAlpha(x, y, index int, alpha float64)
	SetPixelShaded(x, y, index int, brightness float64)
	Clear(index int)
	Present()
}

// Mixer is the capability surface the tone/music host functions drive; the
// mixer package supplies a beep-backed implementation.
type Mixer interface {
	Play(frequency float64, durationMs int, waveform int)
	IsPlaying() bool
	StopAll()
}

// iterFrame pairs a live iterator with the source Value it was built from,
// so the source stays GC-reachable for as long as the iterator is in use.
type iterFrame struct {
	src value.Value
	it  iterator.Iterator
}

// VM is one interpreter instance: one operand stack, one call-frame stack,
// one globals table, and the collaborating GC, screen, and mixer.
type VM struct {
	stack []value.Value
	sp    int

	frames []frame

	globals map[string]value.Value

	iterStack []iterFrame

	openUpvalues *value.UpvalueObj

	gc *gc.GC

	Screen Screen
	Mixer  Mixer

	running atomic.Bool

	lastLine, lastCol int

	// Stdout is where the PRINT opcode and cartridge debug output go;
	// defaults to os.Stdout, overridable for tests and the REPL.
	Stdout io.Writer
}

// New constructs a VM with an empty global table and a fresh collector.
func New() *VM {
	return &VM{
		stack:   make([]value.Value, StackSize),
		globals: make(map[string]value.Value),
		gc:      gc.New(),
		Stdout:  os.Stdout,
	}
}

func (vm *VM) print(v value.Value) error {
	_, err := fmt.Fprintln(vm.Stdout, v.AsString())
	return err
}

// RegisterNative installs a native function under name in the globals
// table, the host-call ABI's registration mechanism.
func (vm *VM) RegisterNative(name string, arity int, fn value.Native) {
	f := &value.FunctionObj{Name: name, Params: make([]value.Param, arity), IsNative: true, NativeFn: fn}
	vm.track(f)
	vm.globals[name] = value.FromObj(f)
}

// RegisterConst installs a plain Value under name in the globals table.
func (vm *VM) RegisterConst(name string, v value.Value) {
	vm.globals[name] = v
}

// Globals exposes the global table directly; host functions reach it via
// the `vm any` handle they are called with.
func (vm *VM) Globals() map[string]value.Value { return vm.globals }

// track registers a fresh heap allocation with the collector; the
// collection itself runs later, in MaybeCollect at the next safe-point.
func (vm *VM) track(o value.Obj) {
	vm.gc.Register(o)
}

// Track registers an already-constructed heap object with the collector;
// the exported form of track, used by host builtins that allocate object
// kinds the VM itself has no dedicated NewXxx constructor for (images,
// sprites, sounds, files, 3D models).
func (vm *VM) Track(o value.Obj) { vm.track(o) }

// SetGCThreshold overrides the collector's starting allocation threshold,
// the mechanism behind the CLI's --gc-threshold flag.
func (vm *VM) SetGCThreshold(n int) { vm.gc.SetThreshold(n) }

// MaybeCollect runs a collection if the allocator threshold has been
// crossed; called at safe-points between instructions.
func (vm *VM) MaybeCollect() {
	if !vm.gc.ShouldCollect() {
		return
	}
	vm.gc.Collect(vm.roots())
}

func (vm *VM) roots() gc.Roots {
	frameVals := make([]value.Value, 0, len(vm.frames))
	for _, f := range vm.frames {
		if f.fn.IsNative {
			continue
		}
		frameVals = append(frameVals, value.FromObj(f.fn))
	}
	iterVals := make([]value.Value, 0, len(vm.iterStack))
	for _, it := range vm.iterStack {
		iterVals = append(iterVals, it.src)
	}
	return gc.Roots{
		Stack:        vm.stack[:vm.sp],
		Frames:       frameVals,
		Globals:      vm.globals,
		OpenUpvalues: vm.openUpvalues,
		Iterators:    iterVals,
	}
}

// Stop requests cancellation; the dispatch loop checks this at the top of
// every iteration (a safe-point) and exits cleanly once observed.
func (vm *VM) Stop() { vm.running.Store(false) }

// Running reports whether the dispatch loop is (or was, at last check)
// still executing.
func (vm *VM) Running() bool { return vm.running.Load() }

// runtimeErr builds a position-carrying runtime error from the most
// recently dispatched instruction's recorded source position.
func (vm *VM) runtimeErr(format string, args ...any) error {
	return langerr.Runtime(vm.lastLine, vm.lastCol, format, args...)
}

func (vm *VM) domainErr(format string, args ...any) error {
	return langerr.Domain(vm.lastLine, vm.lastCol, format, args...)
}

// push and pop manage the fixed operand stack; push reports a runtime
// error instead of panicking on overflow.
func (vm *VM) push(v value.Value) error {
	if vm.sp >= len(vm.stack) {
		return vm.runtimeErr("stack overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() value.Value {
	vm.sp--
	v := vm.stack[vm.sp]
	vm.stack[vm.sp] = value.Nil
	return v
}

func (vm *VM) peek(fromTop int) value.Value {
	return vm.stack[vm.sp-1-fromTop]
}

// NewString, NewList, NewMap, NewRange allocate and register a heap object
// with the collector in one step; every builtin and VM opcode that
// allocates goes through one of these instead of calling value.NewXxx
// directly, so nothing escapes onto the stack unregistered.
func (vm *VM) NewString(s string) *value.StringObj {
	o := value.NewString(s)
	vm.track(o)
	return o
}

func (vm *VM) NewList(items []value.Value) *value.ListObj {
	o := value.NewList(items)
	vm.track(o)
	return o
}

func (vm *VM) NewMap() *value.MapObj {
	o := value.NewMap()
	vm.track(o)
	return o
}

func (vm *VM) NewRange(start, end, step float64) (*value.RangeObj, error) {
	o, ok := value.NewRange(start, end, step)
	if !ok {
		return nil, vm.domainErr("range step must not be zero")
	}
	vm.track(o)
	return o, nil
}
