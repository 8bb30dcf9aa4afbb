// Package mmu defines the contract between the pager core and the memory
// management unit it sits beneath. The core never holds a concrete MMU —
// only this interface — so tests and demo tools can swap in the reference
// Simulator without the core depending on it.
package mmu

import "fmt"

// Protection is the access mode of a mapping.
type Protection int

const (
	// None means the page is mapped but any access traps.
	None Protection = iota
	// Read allows loads only; a store traps.
	Read
	// ReadWrite allows loads and stores.
	ReadWrite
)

// String renders the protection the way a fault log line would.
func (p Protection) String() string {
	switch p {
	case None:
		return "NONE"
	case Read:
		return "READ"
	case ReadWrite:
		return "READ_WRITE"
	default:
		return fmt.Sprintf("Protection(%d)", int(p))
	}
}

// MMU is the set of primitives the pager core drives during fault handling
// and diagnostic reads. Every call is assumed synchronous and infallible —
// the core never checks a return value or error from these calls.
type MMU interface {
	// Resident establishes a mapping for vaddr in pid's address space at
	// the given physical frame, with the given protection.
	Resident(pid int, vaddr uintptr, frame int, prot Protection)
	// NonResident removes the mapping for vaddr; a subsequent access
	// faults as non-resident.
	NonResident(pid int, vaddr uintptr)
	// ChProt changes the protection of an existing mapping without
	// touching residency.
	ChProt(pid int, vaddr uintptr, prot Protection)
	// ZeroFill zeroes the physical frame.
	ZeroFill(frame int)
	// DiskRead loads a backing-store block into a physical frame.
	DiskRead(block int, frame int)
	// DiskWrite stores a physical frame to a backing-store block.
	DiskWrite(frame int, block int)
	// ReadByte returns the byte at the given offset within a physical
	// frame. This is the pmem view the diagnostic reader copies out of.
	ReadByte(frame int, offset int) byte
}
