package value

// UpvalSpec is the compile-time-resolved description of one upvalue a
// closure captures: either a local slot in the enclosing frame (IsLocal)
// or an upvalue slot inherited from the enclosing frame's own closure.
type UpvalSpec struct {
	Index   int
	IsLocal bool
}

// Code is satisfied by the compiler's Proto (bytecode + constant pool +
// name table + line metadata). value stays independent of the compiler
// package; FunctionObj only needs this narrow view of a compiled body, and
// the collector only needs ConstPool to walk a Proto's out-edges.
type Code interface {
	Obj
	Identity() uint32
	Bytecode() []byte
	UpvalueSpecs() []UpvalSpec
	Params() []Param
	ConstPool() []Value
	PosAt(offset int) (line, col int)
	GlobalNames() []string
	LocalCount() int
}

// Native is the signature every host function is registered under: it
// receives the VM handle (as an opaque interface to avoid an import cycle
// with the vm package) and the argument slice, and returns a single Value
// or an error that the VM turns into a runtime error at the calling
// instruction.
type Native func(vm any, args []Value) (Value, error)

// Param describes one declared parameter: its name and an optional default
// expression value (already evaluated at compile time into a constant, or
// nil when there is no default).
type Param struct {
	Name    string
	Default Value
	HasDefault bool
}

// FunctionObj represents both user-defined closures and native host
// functions; IsNative selects which of Proto/NativeFn is live.
type FunctionObj struct {
	Header
	Name     string
	Params   []Param
	Proto    Code // nil for native functions
	Upvalues []*UpvalueObj
	This     Value // bound `this`, for methods captured off a map literal
	HasThis  bool

	IsNative bool
	NativeFn Native
}

func (f *FunctionObj) ObjKind() ObjKind  { return ObjFunction }
func (f *FunctionObj) GCHeader() *Header { return &f.Header }

// Arity returns the declared parameter count.
func (f *FunctionObj) Arity() int { return len(f.Params) }

// UpvalueObj is an open/closed capture handle. While Open is true it
// points at a live stack slot (via the Slot index into the VM's operand
// stack); once the owning frame exits, the VM copies the value into
// Closed and flips Open to false.
type UpvalueObj struct {
	Header
	Slot   int // stack index, meaningful only while Open
	Closed Value
	Open   bool
	NextOpen *UpvalueObj // singly-linked open-upvalue list, ordered by descending Slot
}

func (u *UpvalueObj) ObjKind() ObjKind  { return ObjUpvalue }
func (u *UpvalueObj) GCHeader() *Header { return &u.Header }

// Get reads the upvalue's current value; stack is the owning VM's operand
// stack, needed while the upvalue is still open.
func (u *UpvalueObj) Get(stack []Value) Value {
	if u.Open {
		return stack[u.Slot]
	}
	return u.Closed
}

// Set writes the upvalue's current value.
func (u *UpvalueObj) Set(stack []Value, v Value) {
	if u.Open {
		stack[u.Slot] = v
		return
	}
	u.Closed = v
}

// Close copies the current stack value into the box and marks the upvalue
// closed; called when the owning frame unwinds past Slot.
func (u *UpvalueObj) Close(stack []Value) {
	if !u.Open {
		return
	}
	u.Closed = stack[u.Slot]
	u.Open = false
}
