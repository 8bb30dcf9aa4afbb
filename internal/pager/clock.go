package pager

import "github.com/pagevm/pagevm/internal/mmu"

// obtainFrame selects a physical frame for a new mapping: a free frame if
// one exists (no hand movement), otherwise the second-chance clock sweep.
//
// The sweep inspects frames[hand] on each step. A referenced frame is
// given one more cycle — its owning page's protection is downgraded to
// NONE (so the page stays mapped but the next touch re-faults as a
// resident fault, letting the protection sub-machine restore access) and
// its reference bit is cleared. An unreferenced frame is evicted: the MMU
// is told it's non-resident, a dirty page is written back first, and the
// frame is handed to the caller. The hand advances on every step, which
// bounds the sweep at 2*nframes iterations before some frame's reference
// bit has been cleared and is evicted on the second pass.
func (m *Manager) obtainFrame() int {
	if idx, ok := m.frames.FindFree(); ok {
		return idx
	}

	limit := 2 * m.frames.Len()
	for i := 0; i < limit; i++ {
		hand := m.frames.Hand()
		f := m.frames.At(hand)

		if !f.inUse {
			m.frames.Advance()
			return hand
		}

		proc, ok := m.procs.Find(f.pid)
		var owner *Page
		if ok && f.pageIndex >= 0 && f.pageIndex < len(proc.pages) {
			owner = proc.pages[f.pageIndex]
		}
		if owner == nil {
			m.frames.Clear(hand)
			m.frames.Advance()
			return hand
		}

		if f.referenced {
			f.referenced = false
			owner.prot = mmu.None
			m.mmu.ChProt(f.pid, owner.vaddr, mmu.None)
			m.frames.Advance()
			continue
		}

		m.mmu.NonResident(f.pid, owner.vaddr)
		if owner.dirty {
			m.mmu.DiskWrite(hand, owner.block)
			owner.onDisk = true
			owner.dirty = false
			m.writeBacks++
		}
		owner.frame = noFrame
		owner.prot = mmu.None
		m.frames.Clear(hand)
		m.frames.Advance()
		m.evictions++
		return hand
	}

	// Unreachable under the invariant that every occupied frame's
	// reference bit is cleared within one full sweep, but a hard bound
	// keeps a corrupted frame table from spinning forever.
	panic(&FatalError{Op: "obtainFrame", Err: errReplacementExhausted})
}
