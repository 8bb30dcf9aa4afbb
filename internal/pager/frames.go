package pager

// Frame is a physical-frame record. The second-chance reference bit lives
// here rather than on the Page because it describes the current mapping,
// not the page itself — it is implicitly discarded when the frame is
// cleared on eviction.
type Frame struct {
	inUse      bool
	pid        int
	pageIndex  int
	referenced bool
}

// FrameTable is the fixed-size array of physical-frame records that
// anchors the clock hand. Like ProcessTable, it carries no lock of its
// own — every access happens under the Manager's global mutex.
type FrameTable struct {
	frames []Frame
	hand   int
}

// NewFrameTable allocates nframes frame records, all free, hand at 0.
func NewFrameTable(nframes int) *FrameTable {
	return &FrameTable{frames: make([]Frame, nframes)}
}

// Len returns the fixed frame-table size.
func (t *FrameTable) Len() int { return len(t.frames) }

// At returns a pointer to the frame record at idx for in-place mutation.
func (t *FrameTable) At(idx int) *Frame { return &t.frames[idx] }

// Hand returns the current clock-hand position.
func (t *FrameTable) Hand() int { return t.hand }

// Advance moves the hand one step forward, wrapping at the table size.
func (t *FrameTable) Advance() { t.hand = (t.hand + 1) % len(t.frames) }

// SetHand places the hand at an explicit position, used after §4.7's
// "advance to (chosen+1) mod nframes" mapping step.
func (t *FrameTable) SetHand(pos int) { t.hand = pos % len(t.frames) }

// FindFree scans for any unused frame, without touching the hand — the
// free-frame fast path ahead of the clock sweep.
func (t *FrameTable) FindFree() (int, bool) {
	for i := range t.frames {
		if !t.frames[i].inUse {
			return i, true
		}
	}
	return 0, false
}

// Occupy marks a frame in use by (pid, pageIndex) with the reference bit
// set, as every new mapping requires.
func (t *FrameTable) Occupy(idx, pid, pageIndex int) {
	f := &t.frames[idx]
	f.inUse = true
	f.pid = pid
	f.pageIndex = pageIndex
	f.referenced = true
}

// Clear drops a frame back to free, owning nothing.
func (t *FrameTable) Clear(idx int) {
	t.frames[idx] = Frame{}
}

// InUse counts occupied frames, for the stats surface.
func (t *FrameTable) InUse() int {
	n := 0
	for i := range t.frames {
		if t.frames[i].inUse {
			n++
		}
	}
	return n
}
