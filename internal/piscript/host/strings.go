package host

import (
	"strconv"
	"strings"

	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func registerStrings(m *vm.VM) {
	m.RegisterNative("upper", 1, func(h any, args []value.Value) (value.Value, error) {
		return value.FromObj(asVM(h).NewString(strings.ToUpper(argString(args, 0)))), nil
	})
	m.RegisterNative("lower", 1, func(h any, args []value.Value) (value.Value, error) {
		return value.FromObj(asVM(h).NewString(strings.ToLower(argString(args, 0)))), nil
	})
	m.RegisterNative("trim", 1, func(h any, args []value.Value) (value.Value, error) {
		return value.FromObj(asVM(h).NewString(strings.TrimSpace(argString(args, 0)))), nil
	})
	m.RegisterNative("replace", 3, func(h any, args []value.Value) (value.Value, error) {
		s := strings.ReplaceAll(argString(args, 0), argString(args, 1), argString(args, 2))
		return value.FromObj(asVM(h).NewString(s)), nil
	})
	m.RegisterNative("substr", 3, func(h any, args []value.Value) (value.Value, error) {
		r := []rune(argString(args, 0))
		start := clampSub(argInt(args, 1), len(r))
		end := clampSub(argInt(args, 2), len(r))
		if end < start {
			start, end = end, start
		}
		return value.FromObj(asVM(h).NewString(string(r[start:end]))), nil
	})
	m.RegisterNative("char_at", 2, func(h any, args []value.Value) (value.Value, error) {
		r := []rune(argString(args, 0))
		if len(r) == 0 {
			return value.FromObj(asVM(h).NewString("")), nil
		}
		i := value.GetIndex(argInt(args, 1), len(r))
		return value.FromObj(asVM(h).NewString(string(r[i]))), nil
	})
	m.RegisterNative("split", 2, func(h any, args []value.Value) (value.Value, error) {
		parts := strings.Split(argString(args, 0), argString(args, 1))
		vm := asVM(h)
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.FromObj(vm.NewString(p))
		}
		return value.FromObj(vm.NewList(items)), nil
	})
	m.RegisterNative("join", 2, func(h any, args []value.Value) (value.Value, error) {
		l, ok := asList(args[0])
		if !ok {
			return value.Nil, wrongType("list", "join")
		}
		sep := argString(args, 1)
		parts := make([]string, len(l.Items))
		for i, v := range l.Items {
			parts[i] = v.AsString()
		}
		return value.FromObj(asVM(h).NewString(strings.Join(parts, sep))), nil
	})
	m.RegisterNative("to_number", 1, func(h any, args []value.Value) (value.Value, error) {
		f, ok := args[0].AsNumber()
		if !ok {
			return value.Nil, nil
		}
		return value.Num(f), nil
	})
	m.RegisterNative("to_string", 1, func(h any, args []value.Value) (value.Value, error) {
		return value.FromObj(asVM(h).NewString(args[0].AsString())), nil
	})
	m.RegisterNative("parse_int", 2, func(h any, args []value.Value) (value.Value, error) {
		base := argInt(args, 1)
		if base == 0 {
			base = 10
		}
		n, err := strconv.ParseInt(strings.TrimSpace(argString(args, 0)), base, 64)
		if err != nil {
			return value.Nil, nil
		}
		return value.Num(float64(n)), nil
	})
	m.RegisterNative("contains", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Bool(strings.Contains(argString(args, 0), argString(args, 1))), nil
	})
	m.RegisterNative("starts_with", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Bool(strings.HasPrefix(argString(args, 0), argString(args, 1))), nil
	})
	m.RegisterNative("ends_with", 2, func(h any, args []value.Value) (value.Value, error) {
		return value.Bool(strings.HasSuffix(argString(args, 0), argString(args, 1))), nil
	})
}

func clampSub(i, length int) int {
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}
