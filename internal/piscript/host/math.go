package host

import (
	"math"
	"math/rand"

	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func registerMath(m *vm.VM) {
	unary := func(name string, f func(float64) float64) {
		m.RegisterNative(name, 1, func(h any, args []value.Value) (value.Value, error) {
			return value.Num(f(argNumber(args, 0))), nil
		})
	}

	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", math.Round)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)

	m.RegisterNative("pow", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Num(math.Pow(argNumber(args, 0), argNumber(args, 1))), nil
	})
	m.RegisterNative("atan2", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Num(math.Atan2(argNumber(args, 0), argNumber(args, 1))), nil
	})
	m.RegisterNative("min", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Num(math.Min(argNumber(args, 0), argNumber(args, 1))), nil
	})
	m.RegisterNative("max", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Num(math.Max(argNumber(args, 0), argNumber(args, 1))), nil
	})
	m.RegisterNative("random", 0, func(h any, args []value.Value) (value.Value, error) {
		return value.Num(rand.Float64()), nil
	})
	m.RegisterNative("random_range", 2, func(h any, args []value.Value) (value.Value, error) {
		lo, hi := argNumber(args, 0), argNumber(args, 1)
		return value.Num(lo + rand.Float64()*(hi-lo)), nil
	})
}
