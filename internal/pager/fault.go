package pager

import "github.com/pagevm/pagevm/internal/mmu"

// Fault handles a page fault delivered on behalf of pid at addr. An
// unknown pid or an address past the process's reserved pages is a silent
// no-op — the runtime is trusted to only deliver faults on reserved
// addresses, so this is a benign race, not a caller error.
func (m *Manager) Fault(pid int, addr uintptr) {
	m.mu.Lock()
	defer m.mu.Unlock()

	proc, ok := m.procs.Find(pid)
	if !ok {
		return
	}
	idx, ok := pageIndexFor(m.base, m.pageSize, addr, len(proc.pages))
	if !ok {
		return
	}
	pg := proc.pages[idx]

	if pg.Resident() {
		// Resident fault: a protection fault. Restore or upgrade access,
		// then mark the frame referenced regardless of which branch ran.
		m.upgradeProtection(pid, pg)
		m.frames.At(pg.frame).referenced = true
		return
	}

	frame := m.obtainFrame()
	m.mapPage(pid, idx, pg, frame)
}

// upgradeProtection implements the resident-fault sub-machine. The MMU
// never tells the handler whether a fault was a read or a write, so the
// design resolves this from the page's current protection: NONE means a
// second-chance restoration (treated as a read), READ means the fault must
// have been a write (a hardware read wouldn't trap on a readable page),
// and READ_WRITE is already fully open and the fault is idempotently
// treated as a write.
func (m *Manager) upgradeProtection(pid int, pg *Page) {
	switch pg.prot {
	case mmu.None:
		if pg.dirty {
			pg.prot = mmu.ReadWrite
		} else {
			pg.prot = mmu.Read
		}
		m.mmu.ChProt(pid, pg.vaddr, pg.prot)
	case mmu.Read:
		pg.prot = mmu.ReadWrite
		pg.dirty = true
		m.mmu.ChProt(pid, pg.vaddr, mmu.ReadWrite)
	case mmu.ReadWrite:
		pg.dirty = true
	}
}

// mapPage brings pg into frameIdx: loads its block if the block holds a
// written-back image, or zero-fills a page that has never been written
// back, then establishes a READ-only mapping.
// The clock hand is advanced past frameIdx so replacement does not
// immediately revisit the slot that was just filled.
func (m *Manager) mapPage(pid, pageIndex int, pg *Page, frameIdx int) {
	if pg.onDisk {
		m.mmu.DiskRead(pg.block, frameIdx)
	} else {
		m.mmu.ZeroFill(frameIdx)
	}
	m.mmu.Resident(pid, pg.vaddr, frameIdx, mmu.Read)

	pg.frame = frameIdx
	pg.prot = mmu.Read
	pg.dirty = false

	m.frames.Occupy(frameIdx, pid, pageIndex)
	m.frames.SetHand(frameIdx + 1)
}

// pageIndexFor resolves a virtual address to a page index within a
// process's reserved range, returning false if addr is out of range.
func pageIndexFor(base uintptr, pageSize int, addr uintptr, npages int) (int, bool) {
	if addr < base {
		return 0, false
	}
	idx := int((addr - base) / uintptr(pageSize))
	if idx < 0 || idx >= npages {
		return 0, false
	}
	return idx, true
}
