package host

import (
	"os"

	"github.com/rolandbrake/piscript/internal/piscript/value"
	"github.com/rolandbrake/piscript/internal/piscript/vm"
)

func asFile(v value.Value) (*value.FileObj, bool) {
	if !v.IsObjKind(value.ObjFile) {
		return nil, false
	}
	return v.Obj.(*value.FileObj), true
}

func registerIO(m *vm.VM) {
	m.RegisterNative("file_open", 2, func(h any, args []value.Value) (value.Value, error) {
		path, mode := argString(args, 0), argString(args, 1)
		var flag int
		switch mode {
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		default:
			flag = os.O_RDONLY
		}
		f, err := os.OpenFile(path, flag, 0644)
		if err != nil {
			return value.Nil, nil
		}
		vm := asVM(h)
		fo := &value.FileObj{Handle: f, Path: path, Mode: mode}
		vm.Track(fo)
		return value.FromObj(fo), nil
	})
	m.RegisterNative("file_read", 1, func(h any, args []value.Value) (value.Value, error) {
		f, ok := asFile(args[0])
		if !ok || f.Closed {
			return value.Nil, wrongType("open file", "file_read")
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return value.Nil, nil
		}
		return value.FromObj(asVM(h).NewString(string(data))), nil
	})
	m.RegisterNative("file_write", 2, func(h any, args []value.Value) (value.Value, error) {
		f, ok := asFile(args[0])
		if !ok || f.Closed {
			return value.Bool(false), wrongType("open file", "file_write")
		}
		_, err := f.Handle.WriteString(argString(args, 1))
		return value.Bool(err == nil), nil
	})
	m.RegisterNative("file_close", 1, func(h any, args []value.Value) (value.Value, error) {
		f, ok := asFile(args[0])
		if !ok || f.Closed {
			return value.Bool(false), nil
		}
		err := f.Handle.Close()
		f.Closed = true
		return value.Bool(err == nil), nil
	})
	m.RegisterNative("file_exists", 1, func(h any, args []value.Value) (value.Value, error) {
		_, err := os.Stat(argString(args, 0))
		return value.Bool(err == nil), nil
	})
}
