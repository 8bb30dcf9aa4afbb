// Package pagercfg loads the address-space and resource-pool parameters a
// pager.Manager is built from: nframes, nblocks, the virtual base address,
// the inclusive max address, and the page size. This is the one place
// that input is read from — a YAML file whose path the cmd/ entry points
// take from their -config flag. No command-line flag overrides an
// individual field.
package pagercfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pagevm/pagevm/internal/pager"
)

// File is the on-disk YAML shape. Addresses are decimal or 0x-prefixed
// hex strings so a config file can read naturally ("base: 0x60000000").
type File struct {
	NFrames  int    `yaml:"nframes"`
	NBlocks  int    `yaml:"nblocks"`
	Base     string `yaml:"base"`
	MaxAddr  string `yaml:"max_addr"`
	PageSize int    `yaml:"page_size"`
}

// Defaults mirrors the UVM_BASEADDR/UVM_MAXADDR layout of the reference
// simulator this manager's contract was distilled from: a 1 MiB user
// region starting at 0x60000000, with a 4 KiB page size.
func Defaults() File {
	return File{
		NFrames:  8,
		NBlocks:  16,
		Base:     "0x60000000",
		MaxAddr:  "0x600FFFFF",
		PageSize: 4096,
	}
}

// Load reads and parses a YAML config file, falling back to Defaults for
// any field the file leaves at its zero value.
func Load(path string) (File, error) {
	f := Defaults()
	if path == "" {
		return f, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var parsed File
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if parsed.NFrames > 0 {
		f.NFrames = parsed.NFrames
	}
	if parsed.NBlocks > 0 {
		f.NBlocks = parsed.NBlocks
	}
	if parsed.Base != "" {
		f.Base = parsed.Base
	}
	if parsed.MaxAddr != "" {
		f.MaxAddr = parsed.MaxAddr
	}
	if parsed.PageSize > 0 {
		f.PageSize = parsed.PageSize
	}
	return f, nil
}

// ToManagerConfig parses the address strings and builds a pager.Config.
func (f File) ToManagerConfig() (pager.Config, error) {
	base, err := parseAddr(f.Base)
	if err != nil {
		return pager.Config{}, fmt.Errorf("base: %w", err)
	}
	maxAddr, err := parseAddr(f.MaxAddr)
	if err != nil {
		return pager.Config{}, fmt.Errorf("max_addr: %w", err)
	}
	return pager.Config{
		NFrames:  f.NFrames,
		NBlocks:  f.NBlocks,
		Base:     base,
		MaxAddr:  maxAddr,
		PageSize: f.PageSize,
	}, nil
}

func parseAddr(s string) (uintptr, error) {
	var v uint64
	_, err := fmt.Sscanf(s, "0x%x", &v)
	if err != nil {
		_, err = fmt.Sscanf(s, "%d", &v)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uintptr(v), nil
}
