package pager

// Process is a per-process descriptor: an ordered sequence of pages in
// allocation order, where page i sits at vaddr BASE + i*PAGE_SIZE. Pages
// are only ever appended (by Extend) or torn down in bulk (by Destroy) —
// the slice index is load-bearing identity, never a free-standing key.
type Process struct {
	pid   int
	pages []*Page
}

// ProcessTable maps pid to Process. It carries no lock of its own: every
// access happens under the Manager's single global mutex.
type ProcessTable struct {
	procs map[int]*Process
}

// NewProcessTable allocates an empty table.
func NewProcessTable() *ProcessTable {
	return &ProcessTable{procs: make(map[int]*Process)}
}

// Create registers a new process with an empty page list. Behavior on a
// duplicate pid is undefined by contract — the caller guarantees pid
// uniqueness among live processes.
func (t *ProcessTable) Create(pid int) {
	t.procs[pid] = &Process{pid: pid}
}

// Find returns the descriptor for pid, or (nil, false) if unknown.
func (t *ProcessTable) Find(pid int) (*Process, bool) {
	p, ok := t.procs[pid]
	return p, ok
}

// Destroy releases every resource the process holds and removes it from
// the table. It is a no-op if pid is unknown. For each page: if resident,
// the frame slot is cleared directly (no MMU call — the process no longer
// exists to receive one); then its block is released. Each resident page's
// frame index is passed to onResident, so the caller (the Manager) clears
// the frame-table slot without this table depending on FrameTable itself.
func (t *ProcessTable) Destroy(pid int, onResident func(frame int), blocks *BlockAllocator) {
	proc, ok := t.procs[pid]
	if !ok {
		return
	}
	for _, pg := range proc.pages {
		if pg.Resident() {
			onResident(pg.frame)
		}
		blocks.Release(pg.block)
	}
	delete(t.procs, pid)
}

// Count returns the number of live processes — used by the stats surface.
func (t *ProcessTable) Count() int { return len(t.procs) }
