package pager

import "github.com/pagevm/pagevm/internal/mmu"

// noFrame marks a page with no current physical frame.
const noFrame = -1

// Page is a process's per-page metadata. Its index within a Process's page
// slice is also its identity: vaddr is always BASE + index*PAGE_SIZE, and
// the frame table's back-pointers reference pages by (pid, index) rather
// than by vaddr.
type Page struct {
	vaddr uintptr

	// block is assigned once, at Extend time, and never reassigned for
	// the page's lifetime.
	block int

	// frame is noFrame when the page is not resident.
	frame int

	prot mmu.Protection

	// dirty is true if the page has been written since it was last
	// flushed to its block or first mapped. A dirty page is always
	// resident — it is cleared on eviction write-back.
	dirty bool

	// onDisk is true once the backing block holds a valid write-back
	// image. False for a page that has never been evicted.
	onDisk bool
}

func newPage(vaddr uintptr, block int) *Page {
	return &Page{
		vaddr: vaddr,
		block: block,
		frame: noFrame,
		prot:  mmu.None,
	}
}

// Resident reports whether the page currently occupies a physical frame.
func (p *Page) Resident() bool { return p.frame != noFrame }
