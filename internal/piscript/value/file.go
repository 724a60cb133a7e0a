package value

import "os"

// FileObj wraps an OS file handle opened by a host I/O builtin.
type FileObj struct {
	Header
	Handle *os.File
	Path   string
	Mode   string
	Closed bool
}

func (f *FileObj) ObjKind() ObjKind  { return ObjFile }
func (f *FileObj) GCHeader() *Header { return &f.Header }
