package vm

import (
	"math"

	"github.com/rolandbrake/piscript/internal/piscript/compiler"
	"github.com/rolandbrake/piscript/internal/piscript/value"
)

func (vm *VM) binary(op compiler.BinOp) error {
	b := vm.pop()
	a := vm.pop()
	switch op {
	case compiler.BinAdd:
		return vm.binAdd(a, b)
	case compiler.BinSub:
		return vm.numericBinary(a, b, func(x, y float64) float64 { return x - y })
	case compiler.BinMul:
		return vm.numericBinary(a, b, func(x, y float64) float64 { return x * y })
	case compiler.BinDiv:
		return vm.numericBinary(a, b, func(x, y float64) float64 { return x / y })
	case compiler.BinMod:
		return vm.numericBinary(a, b, math.Mod)
	case compiler.BinPow:
		return vm.numericBinary(a, b, math.Pow)
	case compiler.BinBitAnd:
		return vm.intBinary(a, b, func(x, y int64) int64 { return x & y })
	case compiler.BinBitOr:
		return vm.intBinary(a, b, func(x, y int64) int64 { return x | y })
	case compiler.BinBitXor:
		return vm.intBinary(a, b, func(x, y int64) int64 { return x ^ y })
	case compiler.BinShl:
		return vm.intBinary(a, b, func(x, y int64) int64 { return x << uint(y&63) })
	case compiler.BinShr:
		return vm.intBinary(a, b, func(x, y int64) int64 { return x >> uint(y&63) })
	case compiler.BinUShr:
		return vm.intBinary(a, b, func(x, y int64) int64 { return int64(uint64(x) >> uint(y&63)) })
	case compiler.BinDot:
		return vm.binDot(a, b)
	default:
		return vm.runtimeErr("unknown binary operator")
	}
}

// binAdd implements `+`: numeric addition, or string concatenation whenever
// either side is a string (the other side coerced via as_string).
func (vm *VM) binAdd(a, b value.Value) error {
	if a.IsObjKind(value.ObjString) || b.IsObjKind(value.ObjString) {
		return vm.push(value.FromObj(vm.NewString(a.AsString() + b.AsString())))
	}
	return vm.numericBinary(a, b, func(x, y float64) float64 { return x + y })
}

func (vm *VM) numericBinary(a, b value.Value, f func(x, y float64) float64) error {
	x, ok := a.AsNumber()
	if !ok {
		return vm.runtimeErr("cannot convert %s to number", a.TypeName())
	}
	y, ok := b.AsNumber()
	if !ok {
		return vm.runtimeErr("cannot convert %s to number", b.TypeName())
	}
	return vm.push(value.Num(f(x, y)))
}

func (vm *VM) intBinary(a, b value.Value, f func(x, y int64) int64) error {
	x, ok := a.AsNumber()
	if !ok {
		return vm.runtimeErr("cannot convert %s to number", a.TypeName())
	}
	y, ok := b.AsNumber()
	if !ok {
		return vm.runtimeErr("cannot convert %s to number", b.TypeName())
	}
	return vm.push(value.Num(float64(f(int64(x), int64(y)))))
}

// binDot implements `@`: vector dot product for equal-length numeric lists,
// and row-major matrix multiplication when both operands carry IsMatrix
// dimensions compatible for the product.
func (vm *VM) binDot(a, b value.Value) error {
	la, aok := a.Obj.(*value.ListObj)
	lb, bok := b.Obj.(*value.ListObj)
	if !aok || !bok {
		return vm.runtimeErr("@ requires two lists, got %s and %s", a.TypeName(), b.TypeName())
	}
	if la.IsMatrix && lb.IsMatrix {
		return vm.matMul(la, lb)
	}
	if len(la.Items) != len(lb.Items) {
		return vm.domainErr("@ requires equal-length operands")
	}
	sum := 0.0
	for i := range la.Items {
		x, ok1 := la.Items[i].AsNumber()
		y, ok2 := lb.Items[i].AsNumber()
		if !ok1 || !ok2 {
			return vm.runtimeErr("@ requires numeric elements")
		}
		sum += x * y
	}
	return vm.push(value.Num(sum))
}

func (vm *VM) matMul(a, b *value.ListObj) error {
	if a.Cols != b.Rows {
		return vm.domainErr("matrix dimensions %dx%d and %dx%d do not conform", a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := make([]value.Value, a.Rows*b.Cols)
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			sum := 0.0
			for k := 0; k < a.Cols; k++ {
				x, _ := a.Items[i*a.Cols+k].AsNumber()
				y, _ := b.Items[k*b.Cols+j].AsNumber()
				sum += x * y
			}
			out[i*b.Cols+j] = value.Num(sum)
		}
	}
	result := vm.NewList(out)
	result.IsNumeric = true
	result.IsMatrix = true
	result.Rows = a.Rows
	result.Cols = b.Cols
	return vm.push(value.FromObj(result))
}

func (vm *VM) compare(op compiler.CompareOp) error {
	b := vm.pop()
	a := vm.pop()
	switch op {
	case compiler.CmpEq:
		return vm.push(value.Bool(value.Equal(a, b)))
	case compiler.CmpNeq:
		return vm.push(value.Bool(!value.Equal(a, b)))
	case compiler.CmpIs:
		return vm.push(value.Bool(vm.strictEqual(a, b)))
	case compiler.CmpIn:
		return vm.membership(a, b)
	case compiler.CmpLt, compiler.CmpLe, compiler.CmpGt, compiler.CmpGe:
		ord := value.Compare(a, b)
		if ord == value.Incomparable {
			return vm.runtimeErr("cannot compare %s and %s", a.TypeName(), b.TypeName())
		}
		return vm.push(value.Bool(orderSatisfies(op, ord)))
	default:
		return vm.runtimeErr("unknown compare operator")
	}
}

func orderSatisfies(op compiler.CompareOp, ord value.Ordering) bool {
	switch op {
	case compiler.CmpLt:
		return ord == value.Less
	case compiler.CmpLe:
		return ord == value.Less || ord == value.Equal_
	case compiler.CmpGt:
		return ord == value.Greater
	case compiler.CmpGe:
		return ord == value.Greater || ord == value.Equal_
	default:
		return false
	}
}

// strictEqual implements `is`: same kind and same underlying identity, with
// no numeric tolerance and no cross-kind coercion.
func (vm *VM) strictEqual(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case value.KindNum, value.KindBool:
		return a.Num == b.Num
	case value.KindNil:
		return true
	case value.KindObj:
		if a.Obj == b.Obj {
			return true
		}
		if a.IsObjKind(value.ObjString) && b.IsObjKind(value.ObjString) {
			return a.Obj.(*value.StringObj).String() == b.Obj.(*value.StringObj).String()
		}
		return false
	}
	return false
}

// membership implements `in`: element-of-list (by Equal), substring-of
// (by byte containment), key-of-map, or value-within-range.
func (vm *VM) membership(elem, container value.Value) error {
	switch o := container.Obj.(type) {
	case *value.ListObj:
		for _, it := range o.Items {
			if value.Equal(elem, it) {
				return vm.push(value.Bool(true))
			}
		}
		return vm.push(value.Bool(false))
	case *value.StringObj:
		if !elem.IsObjKind(value.ObjString) {
			return vm.runtimeErr("in requires a string operand on a string container")
		}
		needle := elem.Obj.(*value.StringObj).String()
		hay := o.String()
		return vm.push(value.Bool(contains(hay, needle)))
	case *value.MapObj:
		_, ok := o.GetChain(elem.AsString())
		return vm.push(value.Bool(ok))
	case *value.RangeObj:
		n, ok := elem.AsNumber()
		if !ok {
			return vm.push(value.Bool(false))
		}
		return vm.push(value.Bool(inRange(o, n)))
	default:
		return vm.runtimeErr("cannot test membership in a %s", container.TypeName())
	}
}

func contains(hay, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if hay[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func inRange(r *value.RangeObj, n float64) bool {
	if r.Step > 0 {
		if n < r.Start || n >= r.End {
			return false
		}
	} else {
		if n > r.Start || n <= r.End {
			return false
		}
	}
	steps := (n - r.Start) / r.Step
	return math.Abs(steps-math.Round(steps)) < 1e-9
}

func (vm *VM) unary(op compiler.UnaryOp) error {
	a := vm.pop()
	switch op {
	case compiler.UnNeg:
		n, ok := a.AsNumber()
		if !ok {
			return vm.runtimeErr("cannot negate a %s", a.TypeName())
		}
		return vm.push(value.Num(-n))
	case compiler.UnPos:
		n, ok := a.AsNumber()
		if !ok {
			return vm.runtimeErr("cannot convert %s to number", a.TypeName())
		}
		return vm.push(value.Num(n))
	case compiler.UnNot:
		return vm.push(value.Bool(!a.AsBool()))
	case compiler.UnBitNot:
		n, ok := a.AsNumber()
		if !ok {
			return vm.runtimeErr("cannot convert %s to number", a.TypeName())
		}
		return vm.push(value.Num(float64(^int64(n))))
	case compiler.UnLen:
		return vm.length(a)
	case compiler.UnTypeof:
		return vm.push(value.FromObj(vm.NewString(a.TypeName())))
	default:
		return vm.runtimeErr("unknown unary operator")
	}
}

func (vm *VM) length(a value.Value) error {
	switch o := a.Obj.(type) {
	case *value.StringObj:
		return vm.push(value.Num(float64(o.Len())))
	case *value.ListObj:
		return vm.push(value.Num(float64(len(o.Items))))
	case *value.MapObj:
		return vm.push(value.Num(float64(o.Len())))
	case *value.RangeObj:
		return vm.push(value.Num(float64(o.Count())))
	default:
		return vm.runtimeErr("cannot take the length of a %s", a.TypeName())
	}
}
