package pager

import "testing"

func TestFrameTableFindFreeThenOccupy(t *testing.T) {
	ft := NewFrameTable(2)

	idx, ok := ft.FindFree()
	if !ok || idx != 0 {
		t.Fatalf("FindFree = (%d, %v), want (0, true)", idx, ok)
	}
	ft.Occupy(idx, 7, 3)

	f := ft.At(idx)
	if !f.inUse || f.pid != 7 || f.pageIndex != 3 || !f.referenced {
		t.Fatalf("frame after Occupy = %+v", f)
	}

	idx2, ok := ft.FindFree()
	if !ok || idx2 != 1 {
		t.Fatalf("FindFree after one occupied = (%d, %v), want (1, true)", idx2, ok)
	}

	ft.Occupy(idx2, 8, 0)
	if _, ok := ft.FindFree(); ok {
		t.Fatalf("FindFree should report no free frames once all are occupied")
	}
	if ft.InUse() != 2 {
		t.Fatalf("InUse = %d, want 2", ft.InUse())
	}
}

func TestFrameTableClearFreesTheSlot(t *testing.T) {
	ft := NewFrameTable(1)
	idx, _ := ft.FindFree()
	ft.Occupy(idx, 1, 0)
	ft.Clear(idx)

	if ft.InUse() != 0 {
		t.Fatalf("InUse after Clear = %d, want 0", ft.InUse())
	}
	if _, ok := ft.FindFree(); !ok {
		t.Fatalf("FindFree should succeed after Clear")
	}
}

func TestFrameTableHandAdvanceAndWrap(t *testing.T) {
	ft := NewFrameTable(3)
	if ft.Hand() != 0 {
		t.Fatalf("initial Hand = %d, want 0", ft.Hand())
	}
	ft.Advance()
	ft.Advance()
	if ft.Hand() != 2 {
		t.Fatalf("Hand after two advances = %d, want 2", ft.Hand())
	}
	ft.Advance()
	if ft.Hand() != 0 {
		t.Fatalf("Hand should wrap to 0, got %d", ft.Hand())
	}

	ft.SetHand(5)
	if ft.Hand() != 2 {
		t.Fatalf("SetHand(5) over 3 frames = %d, want 2 (5 mod 3)", ft.Hand())
	}
}
