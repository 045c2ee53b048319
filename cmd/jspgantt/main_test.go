package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vanderheijden86/jspgantt/pkg/config"
	"github.com/vanderheijden86/jspgantt/pkg/palette"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

// runCLI executes run with an isolated config directory.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("JSPGANTT_FILE", "")
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoTUI(t *testing.T) {
	code, _, stderr := runCLI(t, "-no-tui", testdata("sample.json"))
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
}

func TestRun_ExportWritesEveryPath(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "chart.svg")
	png := filepath.Join(dir, "chart.png")
	bare := filepath.Join(dir, "plain")

	code, _, stderr := runCLI(t, "-no-tui", "-seed", "7",
		"-export", svg+","+png, "-export", bare, testdata("roundtrip.json"))
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	for _, p := range []string{svg, png, bare + ".svg"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
		if !strings.Contains(stderr, "Wrote "+p) {
			t.Errorf("stderr does not report %s:\n%s", p, stderr)
		}
	}
}

func TestRun_ExportBadExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.gif")
	code, _, stderr := runCLI(t, "-no-tui", "-export", out, testdata("roundtrip.json"))
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error exporting chart") {
		t.Errorf("unexpected stderr:\n%s", stderr)
	}
}

func TestRun_SummaryIsPlainMarkdownWhenPiped(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-no-tui", "-summary", testdata("roundtrip.json"))
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{"# Gantt for JSP", "| Makespan | 5 |", "| machine-1 | 2 | 5 | 100.0% |", "```mermaid"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_DataErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"missing packages", testdata("missing_packages.json"), "packages"},
		{"negative start", testdata("negative_start.json"), "operation cannot begin at t < 0"},
		{"missing file", testdata("does-not-exist.json"), "does-not-exist.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "-no-tui", tt.file)
			if code != 1 {
				t.Fatalf("exit %d, want 1", code)
			}
			if !strings.HasPrefix(stderr, "Error loading schedule: ") || !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.want)
			}
		})
	}
}

func TestRun_FlagMisuse(t *testing.T) {
	for _, args := range [][]string{
		{"-no-such-flag"},
		{"-seed", "abc"},
		{"-width", "-5"},
		{"a.json", "b.json"},
	} {
		if code, _, _ := runCLI(t, args...); code != 2 {
			t.Errorf("run(%v) exit %d, want 2", args, code)
		}
	}
}

func TestRun_VersionAndHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "-version")
	if code != 0 || !strings.HasPrefix(stdout, "jspgantt ") {
		t.Errorf("-version: exit %d, stdout %q", code, stdout)
	}
	code, stdout, _ = runCLI(t, "-help")
	if code != 0 || !strings.Contains(stdout, "Usage: jspgantt") || !strings.Contains(stdout, "-export") {
		t.Errorf("-help: exit %d, stdout %q", code, stdout)
	}
}

func TestRun_ExplicitConfigErrorsAreFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("export:\n  default_format: gif\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runCLI(t, "-no-tui", "-config", path, testdata("roundtrip.json"))
	if code != 1 || !strings.Contains(stderr, "Error loading config") {
		t.Errorf("exit %d, stderr %q", code, stderr)
	}
}

func TestRun_WriteConfigDefaultPath(t *testing.T) {
	code, _, stderr := runCLI(t, "-write-config", "-seed", "42")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	path := config.ConfigPath()
	if !strings.Contains(stderr, "Wrote "+path) {
		t.Errorf("stderr does not report %s:\n%s", path, stderr)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Palette.Seed == nil || *cfg.Palette.Seed != 42 {
		t.Errorf("palette.seed = %v, want 42", cfg.Palette.Seed)
	}
	if !cfg.UI.Mouse || cfg.Export.DefaultFormat != "svg" {
		t.Errorf("defaults not persisted: %+v", cfg)
	}
}

func TestRun_WriteConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "jspgantt.yaml")
	code, _, stderr := runCLI(t, "-write-config", "-config", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Palette.Seed != nil {
		t.Errorf("palette.seed = %d, want unset", *cfg.Palette.Seed)
	}
	if _, err := os.Stat(config.ConfigPath()); !os.IsNotExist(err) {
		t.Errorf("default config path should be untouched, stat err = %v", err)
	}
}

func TestExportPaths_Set(t *testing.T) {
	var e exportPaths
	_ = e.Set("a.svg, b.png")
	_ = e.Set("c")
	_ = e.Set(" , ")
	want := exportPaths{"a.svg", "b.png", "c"}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("exportPaths = %v, want %v", e, want)
	}
	if e.String() != "a.svg,b.png,c" {
		t.Errorf("String() = %q", e.String())
	}
}

func TestChoosePalette_Precedence(t *testing.T) {
	cfgSeed := uint64(11)
	cfg := config.DefaultConfig()
	cfg.Palette.Seed = &cfgSeed

	fromFlag := choosePalette(options{seed: 3, seedSet: true}, cfg).Colors(4)
	if !reflect.DeepEqual(fromFlag, palette.Seeded(3).Colors(4)) {
		t.Error("-seed should override palette.seed")
	}
	fromConfig := choosePalette(options{}, cfg).Colors(4)
	if !reflect.DeepEqual(fromConfig, palette.Seeded(11).Colors(4)) {
		t.Error("palette.seed should apply without -seed")
	}
	// -seed 0 is a real seed, not "unset"
	zero := choosePalette(options{seed: 0, seedSet: true}, cfg).Colors(4)
	if !reflect.DeepEqual(zero, palette.Seeded(0).Colors(4)) {
		t.Error("-seed 0 should be honored")
	}
}
