// Command pagevmctl drives a pager.Manager directly, in-process, against
// an mmu.Simulator — a line-oriented command REPL for the paging
// manager's operations.
//
// Commands, one per line, read from stdin or -script:
//
//	create <pid>
//	extend <pid>
//	fault <pid> <addr>
//	syslog <pid> <addr> <len>
//	destroy <pid>
//	stats
//
// Addresses accept 0x-prefixed hex or decimal.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pagevm/pagevm/internal/mmu"
	"github.com/pagevm/pagevm/internal/pager"
	"github.com/pagevm/pagevm/internal/pagercfg"
)

var (
	flagConfig = flag.String("config", "", "path to a pagevm YAML config file (defaults used if empty)")
	flagScript = flag.String("script", "", "path to a command script (stdin if empty)")
	flagEcho   = flag.Bool("echo", false, "echo each command before executing it")
)

func main() {
	flag.Parse()

	cfgFile, err := pagercfg.Load(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	cfg, err := cfgFile.ToManagerConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	sim := mmu.NewSimulator(cfg.NFrames, cfg.NBlocks, cfg.PageSize)
	mgr, err := pager.New(cfg, sim)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init error:", err)
		os.Exit(1)
	}

	in := os.Stdin
	if *flagScript != "" {
		f, err := os.Open(*flagScript)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open script:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if *flagEcho {
			fmt.Println("> " + line)
		}
		if err := runCommand(mgr, line); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}
}

func runCommand(mgr *pager.Manager, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "create":
		pid, err := parseInt(fields, 1)
		if err != nil {
			return err
		}
		return mgr.CreateProcess(pid)

	case "extend":
		pid, err := parseInt(fields, 1)
		if err != nil {
			return err
		}
		vaddr, err := mgr.Extend(pid)
		if err != nil {
			return err
		}
		fmt.Printf("extend pid=%d -> 0x%x\n", pid, vaddr)
		return nil

	case "fault":
		pid, err := parseInt(fields, 1)
		if err != nil {
			return err
		}
		addr, err := parseAddr(fields, 2)
		if err != nil {
			return err
		}
		mgr.Fault(pid, addr)
		return nil

	case "syslog":
		pid, err := parseInt(fields, 1)
		if err != nil {
			return err
		}
		addr, err := parseAddr(fields, 2)
		if err != nil {
			return err
		}
		length, err := parseInt(fields, 3)
		if err != nil {
			return err
		}
		buf, err := mgr.Syslog(pid, addr, length)
		if err != nil {
			return err
		}
		if len(buf) > 0 {
			fmt.Println(hex.EncodeToString(buf))
		}
		return nil

	case "destroy":
		pid, err := parseInt(fields, 1)
		if err != nil {
			return err
		}
		mgr.DestroyProcess(pid)
		return nil

	case "stats":
		s := mgr.Stats()
		fmt.Printf("frames %d/%d blocks %d/%d procs %d evictions %d write_backs %d\n",
			s.FramesInUse, s.FramesTotal, s.BlocksInUse, s.BlocksTotal, s.Processes, s.Evictions, s.WriteBacks)
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func parseInt(fields []string, idx int) (int, error) {
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing argument at position %d", idx)
	}
	return strconv.Atoi(fields[idx])
}

func parseAddr(fields []string, idx int) (uintptr, error) {
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing argument at position %d", idx)
	}
	s := fields[idx]
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, err
	}
	return uintptr(v), nil
}
