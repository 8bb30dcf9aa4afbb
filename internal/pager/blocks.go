package pager

// BlockAllocator is a fixed-size bitmap over the backing store's blocks.
// Claim scans from index 0 for the lowest free slot so allocation order is
// deterministic and reproducible in tests; releasing an out-of-range or
// already-free block is a no-op.
type BlockAllocator struct {
	used   []bool
	inUse  int
}

// NewBlockAllocator builds an allocator over nblocks slots, all free.
func NewBlockAllocator(nblocks int) *BlockAllocator {
	return &BlockAllocator{used: make([]bool, nblocks)}
}

// Claim returns the lowest-indexed free block and marks it used, or false
// if every block is taken.
func (b *BlockAllocator) Claim() (int, bool) {
	for i, taken := range b.used {
		if !taken {
			b.used[i] = true
			b.inUse++
			return i, true
		}
	}
	return 0, false
}

// Release frees a block for reuse.
func (b *BlockAllocator) Release(idx int) {
	if idx < 0 || idx >= len(b.used) {
		return
	}
	if b.used[idx] {
		b.used[idx] = false
		b.inUse--
	}
}

// InUse reports the number of currently claimed blocks — used both for
// property 3 (used blocks == allocated pages) and the stats reporter.
func (b *BlockAllocator) InUse() int { return b.inUse }

// Total reports the bitmap's fixed size.
func (b *BlockAllocator) Total() int { return len(b.used) }
