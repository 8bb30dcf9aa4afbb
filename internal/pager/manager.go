// Package pager implements the core of a user-space demand-paging
// virtual-memory manager: per-process page bookkeeping, a global frame
// table with second-chance (clock) replacement, and the protection-state
// machine that distinguishes first-touch, reference-bit restoration, and
// write upgrades — all under a single lock that preserves invariants
// across evictions and MMU callbacks.
package pager

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/pagevm/pagevm/internal/mmu"
)

// Config is the address-space and resource-pool layout the Manager is
// built from. BASE, MaxAddr and PageSize describe the simulated address
// space; NFrames/NBlocks size the physical-frame and backing-store pools.
type Config struct {
	NFrames  int
	NBlocks  int
	Base     uintptr
	MaxAddr  uintptr
	PageSize int
}

// maxPages computes MAX_PAGES = (MAX_ADDR - BASE + 1) / PAGE_SIZE.
func (c Config) maxPages() int {
	return int((c.MaxAddr-c.Base+1)/uintptr(c.PageSize))
}

// Manager is the lifecycle coordinator and the package's single exported
// entry point. A *Manager returned by New is the only way to reach the
// rest of the package — there is no separate package-level Init call; the
// constructor takes the frame/block pool sizes together with the
// address-space layout as configuration input.
type Manager struct {
	mu sync.Mutex

	frames *FrameTable
	blocks *BlockAllocator
	procs  *ProcessTable
	mmu    mmu.MMU

	base     uintptr
	maxAddr  uintptr
	pageSize int
	maxPages int

	evictions  int64
	writeBacks int64

	logger *log.Logger
}

// New allocates and zeros the frame table, block table and process table,
// and must be called exactly once before any other operation is invoked
// on the returned Manager.
func New(cfg Config, m mmu.MMU) (*Manager, error) {
	if cfg.NFrames <= 0 || cfg.NBlocks <= 0 || cfg.PageSize <= 0 || cfg.MaxAddr < cfg.Base {
		return nil, &FatalError{Op: "New", Err: errInvalidConfig}
	}
	return &Manager{
		frames:   NewFrameTable(cfg.NFrames),
		blocks:   NewBlockAllocator(cfg.NBlocks),
		procs:    NewProcessTable(),
		mmu:      m,
		base:     cfg.Base,
		maxAddr:  cfg.MaxAddr,
		pageSize: cfg.PageSize,
		maxPages: cfg.maxPages(),
		logger:   log.Default(),
	}, nil
}

// SetLogger overrides the default logger (log.Default()), letting tests
// and the cmd/ tools redirect diagnostic lines to a buffer or a custom
// writer.
func (m *Manager) SetLogger(l *log.Logger) { m.logger = l }

// CreateProcess registers pid with an empty page list. Duplicate pid is
// undefined by contract — callers guarantee uniqueness among live
// processes, the same trust boundary Fault and Destroy place on their
// caller.
func (m *Manager) CreateProcess(pid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	traceID := uuid.New()
	m.procs.Create(pid)
	m.logger.Printf("pager[%s]: create pid=%d", shortTrace(traceID), pid)
	return nil
}

// Extend reserves the next page for pid and returns its virtual address.
// It fails with ErrUnknownProcess if pid was never created, ErrOutOfSpace
// if the process already holds MAX_PAGES or no backing-store block is
// free. A failed extend leaves no partial side effect: the MAX_PAGES
// check runs before any block is claimed, and a block claimed for an
// address past MAX_ADDR is released again before returning.
func (m *Manager) Extend(pid int) (uintptr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	proc, ok := m.procs.Find(pid)
	if !ok {
		return 0, ErrUnknownProcess
	}
	if len(proc.pages) >= m.maxPages {
		return 0, ErrOutOfSpace
	}
	block, ok := m.blocks.Claim()
	if !ok {
		return 0, ErrOutOfSpace
	}

	vaddr := m.base + uintptr(len(proc.pages))*uintptr(m.pageSize)
	if vaddr > m.maxAddr {
		m.blocks.Release(block)
		return 0, ErrOutOfSpace
	}

	proc.pages = append(proc.pages, newPage(vaddr, block))
	return vaddr, nil
}

// DestroyProcess releases every resource pid holds: each resident page's
// frame is cleared directly (no MMU call — the process is gone) and each
// page's block is released. A no-op if pid is unknown.
func (m *Manager) DestroyProcess(pid int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.procs.Destroy(pid, m.frames.Clear, m.blocks)
}

// shortTrace renders the first 8 hex characters of a trace ID, a compact
// correlation ID for log lines.
func shortTrace(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
