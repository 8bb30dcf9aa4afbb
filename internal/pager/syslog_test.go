package pager

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pagevm/pagevm/internal/mmu"
)

func TestSyslogZeroLengthReturnsNilWithoutTouchingResidency(t *testing.T) {
	cfg := testConfig()
	mgr, sim := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	vaddr, _ := mgr.Extend(1)

	buf, err := mgr.Syslog(1, vaddr, 0)
	if err != nil || buf != nil {
		t.Fatalf("Syslog(len=0) = (%v, %v), want (nil, nil)", buf, err)
	}
	if len(sim.Calls()) != 0 {
		t.Fatalf("Syslog(len=0) issued MMU calls: %v", sim.Calls())
	}
}

func TestSyslogUnknownProcess(t *testing.T) {
	mgr, _ := newTestManager(t, testConfig())
	if _, err := mgr.Syslog(1, 0x1000, 4); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Syslog(unknown pid) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSyslogNegativeLength(t *testing.T) {
	cfg := testConfig()
	mgr, _ := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	mgr.Extend(1)
	if _, err := mgr.Syslog(1, cfg.Base, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Syslog(negative length) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSyslogRangeOutsideReservedPagesIsRejected(t *testing.T) {
	cfg := testConfig()
	mgr, _ := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	mgr.Extend(1) // reserves exactly one page

	// Starts in range but runs past the single reserved page.
	if _, err := mgr.Syslog(1, cfg.Base, cfg.PageSize+1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Syslog(past reserved range) error = %v, want ErrInvalidArgument", err)
	}
	// Starts before the reserved base entirely.
	if _, err := mgr.Syslog(1, cfg.Base-1, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Syslog(before base) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSyslogForcesResidencyAndReadsBytes(t *testing.T) {
	cfg := testConfig()
	mgr, sim := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	vaddr, _ := mgr.Extend(1)

	proc, _ := mgr.procs.Find(1)
	pg := proc.pages[0]

	// Fault it in first so we can seed pmem with known bytes, then force a
	// second-chance downgrade to verify Syslog restores read access without
	// ever granting write.
	mgr.Fault(1, vaddr)
	sim.WriteByte(pg.frame, 0, 0xDE)
	sim.WriteByte(pg.frame, 1, 0xAD)
	mgr.frames.At(pg.frame).referenced = false
	pg.prot = mmu.None // simulating a clock downgrade

	buf, err := mgr.Syslog(1, vaddr, 2)
	if err != nil {
		t.Fatalf("Syslog error = %v", err)
	}
	if !bytes.Equal(buf, []byte{0xDE, 0xAD}) {
		t.Fatalf("Syslog bytes = %x, want dead", buf)
	}
	if pg.prot != mmu.Read {
		t.Fatalf("page prot after Syslog = %v, want Read", pg.prot)
	}
	if !mgr.frames.At(pg.frame).referenced {
		t.Fatalf("frame reference bit should be set after Syslog touches it")
	}
}

func TestSyslogMapsNonResidentPageOnDemand(t *testing.T) {
	cfg := testConfig()
	mgr, sim := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	vaddr, _ := mgr.Extend(1)

	buf, err := mgr.Syslog(1, vaddr, 1)
	if err != nil {
		t.Fatalf("Syslog error = %v", err)
	}
	if len(buf) != 1 || buf[0] != 0 {
		t.Fatalf("Syslog on a never-written page = %v, want a single zero byte", buf)
	}

	var sawResident bool
	for _, c := range sim.Calls() {
		if c.Op == "resident" {
			sawResident = true
		}
	}
	if !sawResident {
		t.Fatalf("Syslog on a non-resident page should fault it in: calls=%v", sim.Calls())
	}
}

func TestSyslogSpansMultiplePages(t *testing.T) {
	cfg := testConfig()
	mgr, _ := newTestManager(t, cfg)
	mgr.CreateProcess(1)
	v0, _ := mgr.Extend(1)
	mgr.Extend(1)

	proc, _ := mgr.procs.Find(1)
	mgr.Fault(1, v0)
	mgr.Fault(1, proc.pages[1].vaddr)

	buf, err := mgr.Syslog(1, v0+uintptr(cfg.PageSize)-1, 2)
	if err != nil {
		t.Fatalf("Syslog spanning two pages error = %v", err)
	}
	if len(buf) != 2 {
		t.Fatalf("len(buf) = %d, want 2", len(buf))
	}
}
