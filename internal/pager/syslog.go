package pager

import "github.com/pagevm/pagevm/internal/mmu"

// Syslog is the diagnostic reader: it validates that [addr, addr+length)
// lies entirely within pid's currently reserved virtual range, forces
// residency page by page, and returns the raw bytes copied out of
// physical memory. It does not format or print anything — that belongs to
// the caller, which should emit the result as %02x-per-byte hex with a
// single trailing newline only once the lock below has been released
// (holding the lock across output I/O would stall other callers for no
// benefit to the snapshot's atomicity).
//
// length == 0 returns (nil, nil) immediately without touching residency.
func (m *Manager) Syslog(pid int, addr uintptr, length int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	proc, ok := m.procs.Find(pid)
	if !ok {
		return nil, ErrInvalidArgument
	}
	if length == 0 {
		return nil, nil
	}
	if length < 0 {
		return nil, ErrInvalidArgument
	}

	reservedEnd := m.base + uintptr(len(proc.pages))*uintptr(m.pageSize)
	end := addr + uintptr(length)
	if addr < m.base || end < addr || end > reservedEnd {
		return nil, ErrInvalidArgument
	}

	buf := make([]byte, length)
	off := 0
	for off < length {
		curr := addr + uintptr(off)
		pageIdx := int((curr - m.base) / uintptr(m.pageSize))
		pg := proc.pages[pageIdx]

		m.ensureReadable(pid, pageIdx, pg)

		pageStart := m.base + uintptr(pageIdx)*uintptr(m.pageSize)
		inPage := int(curr - pageStart)
		n := m.pageSize - inPage
		if remaining := length - off; n > remaining {
			n = remaining
		}
		for k := 0; k < n; k++ {
			buf[off+k] = m.mmu.ReadByte(pg.frame, inPage+k)
		}
		off += n
	}

	return buf, nil
}

// ensureReadable forces residency for a read-style access: a non-resident
// page is mapped exactly as a fault would map it; a resident page with
// prot NONE is restored (read, or read-write if it was already dirty) —
// the same restoration the protection sub-machine performs on a resident
// fault, but never the READ -> READ_WRITE upgrade, since a diagnostic read
// is never a write. Either way the touched frame's reference bit is set.
func (m *Manager) ensureReadable(pid, pageIndex int, pg *Page) {
	if !pg.Resident() {
		frame := m.obtainFrame()
		m.mapPage(pid, pageIndex, pg, frame)
		return
	}
	if pg.prot == mmu.None {
		if pg.dirty {
			pg.prot = mmu.ReadWrite
		} else {
			pg.prot = mmu.Read
		}
		m.mmu.ChProt(pid, pg.vaddr, pg.prot)
	}
	m.frames.At(pg.frame).referenced = true
}
