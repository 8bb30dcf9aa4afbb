// Package pagevm re-exports the pager manager's public surface from the
// module root, so callers can depend on a single top-level package
// instead of reaching into internal/pager and internal/mmu directly.
package pagevm

import (
	"github.com/pagevm/pagevm/internal/mmu"
	"github.com/pagevm/pagevm/internal/pager"
)

// Manager is the demand-paging virtual memory manager. See internal/pager
// for the full operation semantics.
type Manager = pager.Manager

// Config is the address-space and resource-pool layout a Manager is built
// from.
type Config = pager.Config

// Protection is the page-table protection state: None, Read or ReadWrite.
type Protection = mmu.Protection

// MMU is the hardware/OS collaborator a Manager drives on every fault,
// eviction and protection change.
type MMU = mmu.MMU

// Stats is a point-in-time snapshot of a Manager's resource accounting.
type Stats = pager.Stats

const (
	ProtNone      = mmu.None
	ProtRead      = mmu.Read
	ProtReadWrite = mmu.ReadWrite
)

var (
	// ErrOutOfSpace is returned by Extend when the process is already at
	// its page limit or no backing-store block is free.
	ErrOutOfSpace = pager.ErrOutOfSpace

	// ErrInvalidArgument is returned by Syslog when the requested range
	// falls outside the process's reserved virtual range.
	ErrInvalidArgument = pager.ErrInvalidArgument

	// ErrUnknownProcess is returned by Extend when pid was never created
	// or was already destroyed. Syslog reports an unknown pid as
	// ErrInvalidArgument instead.
	ErrUnknownProcess = pager.ErrUnknownProcess
)

// New builds a Manager over cfg, driving m for every residency, zero-fill,
// protection and disk transfer that paging requires.
func New(cfg Config, m MMU) (*Manager, error) {
	return pager.New(cfg, m)
}

// NewSimulator builds an in-memory MMU stand-in sized for nframes physical
// frames, nblocks backing-store blocks, and pageSize bytes per page —
// useful for tests and demos that don't have a real CPU/TLB to drive.
func NewSimulator(nframes, nblocks, pageSize int) *mmu.Simulator {
	return mmu.NewSimulator(nframes, nblocks, pageSize)
}
