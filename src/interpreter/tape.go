package interpreter

// Tape is a fixed-length array of byte cells with a movable pointer. The
// pointer always addresses a valid cell.
type Tape struct {
	cells  []byte
	ptr    int
	maxPtr int
}

// NewTape allocates a zeroed tape of size cells with the pointer on cell 0.
func NewTape(size int) *Tape {
	return &Tape{cells: make([]byte, size)}
}

// Len returns the number of cells.
func (t *Tape) Len() int { return len(t.cells) }

// Pointer returns the index of the current cell.
func (t *Tape) Pointer() int { return t.ptr }

// MaxPointer returns the highest index the pointer has reached.
func (t *Tape) MaxPointer() int { return t.maxPtr }

// Get returns the current cell.
func (t *Tape) Get() byte { return t.cells[t.ptr] }

// Set stores b in the current cell.
func (t *Tape) Set(b byte) { t.cells[t.ptr] = b }

// Incr adds one to the current cell; 255 wraps to 0.
func (t *Tape) Incr() { t.cells[t.ptr] = byte(uint(t.cells[t.ptr])+1) & 0xff }

// Decr subtracts one from the current cell; 0 wraps to 255.
func (t *Tape) Decr() { t.cells[t.ptr] = byte(uint(t.cells[t.ptr])+0xff) & 0xff }

// Right moves the pointer one cell right. At the last cell it fails with
// ErrPointerOutOfBounds and the pointer does not move.
func (t *Tape) Right() error {
	if t.ptr+1 >= len(t.cells) {
		return ErrPointerOutOfBounds
	}
	t.ptr++
	if t.ptr > t.maxPtr {
		t.maxPtr = t.ptr
	}
	return nil
}

// Left moves the pointer one cell left. At cell 0 it fails with
// ErrPointerOutOfBounds and the pointer does not move.
func (t *Tape) Left() error {
	if t.ptr == 0 {
		return ErrPointerOutOfBounds
	}
	t.ptr--
	return nil
}

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}
