// Package gc implements PiScript's tri-color mark-sweep collector: every
// heap object registered through Register is linked onto a singly-linked
// allocator list, walked and freed at Collect time.
package gc

import "github.com/rolandbrake/piscript/internal/piscript/value"

const initialThreshold = 1024

// Roots is the set of GC roots the VM hands to Collect: the live operand
// stack, every in-flight frame's code and bound function, the globals
// table, the constant pool, the open-upvalue list, and whatever sits on
// the iterator stack.
type Roots struct {
	Stack        []value.Value
	Frames       []value.Value // each frame's Function value, if any
	Globals      map[string]value.Value
	Constants    []value.Value
	OpenUpvalues *value.UpvalueObj
	Iterators    []value.Value
}

// GC owns the allocator's object registry and decides when a collection is
// due.
type GC struct {
	head      value.Obj
	count     int
	threshold int
	lastFreed int
}

// New returns a GC with the collector's starting threshold.
func New() *GC {
	return &GC{threshold: initialThreshold}
}

// SetThreshold overrides the starting collection threshold; used by the
// CLI's --gc-threshold flag for tuning against a known cartridge's
// allocation pattern.
func (gc *GC) SetThreshold(n int) {
	if n > 0 {
		gc.threshold = n
	}
}

// Register links o onto the allocator list. Every heap allocation must
// pass through here before a Value referencing it escapes into a root.
func (gc *GC) Register(o value.Obj) {
	o.GCHeader().SetNext(gc.head)
	gc.head = o
	gc.count++
}

// ShouldCollect reports whether the objects on the allocator list (the
// survivors of the last sweep plus every allocation since) have reached the
// current threshold.
func (gc *GC) ShouldCollect() bool { return gc.count >= gc.threshold }

// LastFreed reports how many objects the most recent Collect call swept.
func (gc *GC) LastFreed() int { return gc.lastFreed }

// Collect runs one full mark-then-sweep pass and doubles the threshold for
// next time.
func (gc *GC) Collect(roots Roots) {
	worklist := make([]value.Obj, 0, 256)
	worklist = appendValueRoots(worklist, roots.Stack)
	worklist = appendValueRoots(worklist, roots.Frames)
	worklist = appendValueRoots(worklist, roots.Constants)
	worklist = appendValueRoots(worklist, roots.Iterators)
	for _, v := range roots.Globals {
		worklist = appendValueRoot(worklist, v)
	}
	for u := roots.OpenUpvalues; u != nil; u = u.NextOpen {
		worklist = markObj(worklist, u)
	}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		obj := worklist[n]
		worklist = worklist[:n]
		worklist = scan(worklist, obj)
	}

	gc.sweep()
	gc.threshold *= 2
}

func appendValueRoots(worklist []value.Obj, vs []value.Value) []value.Obj {
	for _, v := range vs {
		worklist = appendValueRoot(worklist, v)
	}
	return worklist
}

func appendValueRoot(worklist []value.Obj, v value.Value) []value.Obj {
	if !v.IsObj() || v.Obj == nil {
		return worklist
	}
	return markObj(worklist, v.Obj)
}

// markObj grays a white object and pushes it onto the worklist; objects
// already gray or black are left alone, which both terminates cycles and
// avoids redundant re-scans.
func markObj(worklist []value.Obj, o value.Obj) []value.Obj {
	h := o.GCHeader()
	if h.Color() != value.White {
		return worklist
	}
	h.SetColor(value.Gray)
	return append(worklist, o)
}

// scan walks one object's out-edges, graying every white target reached,
// then recolors the object itself black.
func scan(worklist []value.Obj, o value.Obj) []value.Obj {
	switch x := o.(type) {
	case *value.ListObj:
		worklist = appendValueRoots(worklist, x.Items)
	case *value.MapObj:
		for _, v := range x.Entries {
			worklist = appendValueRoot(worklist, v)
		}
		if x.Proto != nil {
			worklist = markObj(worklist, x.Proto)
		}
	case *value.FunctionObj:
		if x.Proto != nil {
			worklist = markObj(worklist, x.Proto)
		}
		for _, u := range x.Upvalues {
			worklist = markObj(worklist, u)
		}
		if x.HasThis {
			worklist = appendValueRoot(worklist, x.This)
		}
	case *value.UpvalueObj:
		if !x.Open {
			worklist = appendValueRoot(worklist, x.Closed)
		}
	case *value.Model3DObj:
		if x.Texture != nil {
			worklist = markObj(worklist, x.Texture)
		}
	case value.Code:
		worklist = appendValueRoots(worklist, x.ConstPool())
	}
	o.GCHeader().SetColor(value.Black)
	return worklist
}

// sweep walks the allocator list, freeing every object still white (kind-
// specific destructor for closeable resources) and resetting survivors
// back to white for the next cycle.
func (gc *GC) sweep() {
	var survivors value.Obj
	var tail value.Obj
	freed := 0
	live := 0

	for o := gc.head; o != nil; {
		next := o.GCHeader().Next()
		if o.GCHeader().Color() == value.White {
			finalize(o)
			freed++
		} else {
			o.GCHeader().SetColor(value.White)
			o.GCHeader().SetNext(nil)
			if survivors == nil {
				survivors = o
			} else {
				tail.GCHeader().SetNext(o)
			}
			tail = o
			live++
		}
		o = next
	}

	gc.head = survivors
	gc.count = live
	gc.lastFreed = freed
}

// finalize releases any external resource a kind holds before it is
// dropped; collection kinds (list/map) need no action beyond letting their
// backing arrays/maps become unreachable Go garbage.
func finalize(o value.Obj) {
	switch x := o.(type) {
	case *value.FileObj:
		if !x.Closed && x.Handle != nil {
			x.Handle.Close()
			x.Closed = true
		}
	}
}
