package compiler

import (
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

// UpvalueRef describes one upvalue slot a Proto captures: either a local
// slot in the immediately enclosing function (IsLocal) or an upvalue slot
// inherited from that enclosing function's own upvalue list.
type UpvalueRef struct {
	Index   int
	IsLocal bool
	Name    string
}

// LinePos pairs an instruction's byte offset with the source line/column it
// was emitted from, so runtime errors can report precise positions without
// re-deriving them from the bytecode stream.
type LinePos struct {
	Offset int
	Line   int
	Column int
}

// Proto is the compiled body of a function (or the top-level program): its
// bytecode, constant pool, interned global-name table, and upvalue
// descriptors. It is itself a GC-tracked heap object so PUSH_CLOSURE can
// treat it as an ordinary constant-pool value.
type Proto struct {
	value.Header

	Name      string
	Code      []byte
	Constants []value.Value
	Names     []string // interned global names, indexed by LOAD_GLOBAL/STORE_GLOBAL operand
	Upvalues  []UpvalueRef
	NumLocals int
	ParamList []value.Param

	Lines []LinePos

	hash uint32
}

func (p *Proto) ObjKind() value.ObjKind  { return value.ObjCode }
func (p *Proto) GCHeader() *value.Header { return &p.Header }
func (p *Proto) Identity() uint32        { return p.hash }
func (p *Proto) Bytecode() []byte        { return p.Code }
func (p *Proto) Params() []value.Param    { return p.ParamList }
func (p *Proto) ConstPool() []value.Value { return p.Constants }
func (p *Proto) GlobalNames() []string    { return p.Names }
func (p *Proto) LocalCount() int          { return p.NumLocals }

// UpvalueSpecs exposes the compile-time-resolved upvalue descriptors so the
// VM can capture them at PUSH_CLOSURE time without importing the compiler
// package.
func (p *Proto) UpvalueSpecs() []value.UpvalSpec {
	out := make([]value.UpvalSpec, len(p.Upvalues))
	for i, u := range p.Upvalues {
		out[i] = value.UpvalSpec{Index: u.Index, IsLocal: u.IsLocal}
	}
	return out
}

// PosAt finds the source line/column recorded for the instruction at byte
// offset off, scanning the parallel metadata array. Returns 0,0 if unknown.
func (p *Proto) PosAt(off int) (int, int) {
	line, col := 0, 0
	for _, lp := range p.Lines {
		if lp.Offset > off {
			break
		}
		line, col = lp.Line, lp.Column
	}
	return line, col
}
