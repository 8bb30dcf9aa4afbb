package pagercfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if f != Defaults() {
		t.Fatalf("Load(\"\") = %+v, want %+v", f, Defaults())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagevm.yaml")
	contents := "nframes: 4\npage_size: 1024\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writeFile error = %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if f.NFrames != 4 {
		t.Fatalf("NFrames = %d, want 4", f.NFrames)
	}
	if f.PageSize != 1024 {
		t.Fatalf("PageSize = %d, want 1024", f.PageSize)
	}
	// Untouched fields fall back to defaults.
	if f.NBlocks != Defaults().NBlocks {
		t.Fatalf("NBlocks = %d, want default %d", f.NBlocks, Defaults().NBlocks)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("nframes: [this is not an int"), 0o644); err != nil {
		t.Fatalf("writeFile error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error for malformed YAML")
	}
}

func TestToManagerConfigParsesHexAndDecimalAddresses(t *testing.T) {
	f := File{NFrames: 2, NBlocks: 2, Base: "0x60000000", MaxAddr: "1611661311", PageSize: 4096}
	cfg, err := f.ToManagerConfig()
	if err != nil {
		t.Fatalf("ToManagerConfig error = %v", err)
	}
	if cfg.Base != 0x60000000 {
		t.Fatalf("Base = %#x, want 0x60000000", cfg.Base)
	}
	if cfg.MaxAddr != 0x600FFFFF {
		t.Fatalf("MaxAddr = %#x, want 0x600FFFFF", cfg.MaxAddr)
	}
}

func TestToManagerConfigRejectsInvalidAddress(t *testing.T) {
	f := Defaults()
	f.Base = "not-an-address"
	if _, err := f.ToManagerConfig(); err == nil {
		t.Fatalf("expected error for invalid base address")
	}
}
