package value

import "math"

// RangeObj is a numeric range with a stride, plus an iteration cursor used
// by the iterator protocol. Step 0 is rejected at construction.
type RangeObj struct {
	Header
	Start, End, Step float64
	cursor           float64
	started          bool
}

// NewRange constructs a range, returning ok=false for step==0.
func NewRange(start, end, step float64) (*RangeObj, bool) {
	if step == 0 {
		return nil, false
	}
	return &RangeObj{Start: start, End: end, Step: step}, true
}

func (r *RangeObj) ObjKind() ObjKind  { return ObjRange }
func (r *RangeObj) GCHeader() *Header { return &r.Header }

// Count reports how many values this range yields: ceil((end-start)/step)
// when sign(step)*(end-start) > 0, else zero.
func (r *RangeObj) Count() int {
	diff := r.End - r.Start
	if sign(r.Step)*diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff / r.Step))
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// Reset rewinds the iteration cursor to the start.
func (r *RangeObj) Reset() {
	r.cursor = r.Start
	r.started = false
}

// HasNext reports whether another value remains on the current side of End.
func (r *RangeObj) HasNext() bool {
	cur := r.cursor
	if !r.started {
		cur = r.Start
	}
	if r.Step > 0 {
		return cur < r.End
	}
	return cur > r.End
}

// Next returns the next value and advances the cursor.
func (r *RangeObj) Next() (float64, bool) {
	if !r.HasNext() {
		return 0, false
	}
	if !r.started {
		r.cursor = r.Start
		r.started = true
	}
	v := r.cursor
	r.cursor += r.Step
	return v, true
}
