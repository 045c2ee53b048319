package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vanderheijden86/jspgantt/pkg/config"
	"github.com/vanderheijden86/jspgantt/pkg/debug"
	"github.com/vanderheijden86/jspgantt/pkg/export"
	"github.com/vanderheijden86/jspgantt/pkg/gantt"
	"github.com/vanderheijden86/jspgantt/pkg/loader"
	"github.com/vanderheijden86/jspgantt/pkg/palette"
	"github.com/vanderheijden86/jspgantt/pkg/ui"
	"github.com/vanderheijden86/jspgantt/pkg/version"

	tea "github.com/charmbracelet/bubbletea"
)

const usageText = `Usage: jspgantt [options] [file]

Render a job-shop schedule as an interactive Gantt chart. The schedule file
defaults to $JSPGANTT_FILE, then sample.json.
`

// exportPaths collects -export values; the flag may repeat and each value
// may hold a comma-separated list.
type exportPaths []string

func (e *exportPaths) String() string {
	return strings.Join(*e, ",")
}

func (e *exportPaths) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*e = append(*e, p)
		}
	}
	return nil
}

// options is the parsed command line.
type options struct {
	file       string
	exports    exportPaths
	seed       uint64
	seedSet    bool
	width      int
	summary    bool
	noTUI      bool
	configPath string
	saveConfig bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code: 0 on success,
// 1 on data or output errors, 2 on flag misuse.
func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		if opts.configPath != "" {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
		// Non-fatal: continue without config
		fmt.Fprintf(stderr, "Warning: ignoring config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if opts.saveConfig {
		return writeConfig(opts, cfg, stderr)
	}

	path := loader.ResolvePath(opts.file)
	s, err := loader.LoadSchedule(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading schedule: %v\n", err)
		return 1
	}

	colors := palette.Assign(choosePalette(opts, cfg), s.Metadata.Jobs)
	chart, err := gantt.Build(s, colors)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering schedule: %v\n", err)
		return 1
	}

	if len(opts.exports) > 0 {
		paths := make([]string, len(opts.exports))
		for i, p := range opts.exports {
			paths[i] = cfg.ResolveExportPath(p)
		}
		written, err := export.SaveAll(context.Background(), chart, paths, cfg.Export.DefaultFormat, opts.width)
		if err != nil {
			fmt.Fprintf(stderr, "Error exporting chart: %v\n", err)
			return 1
		}
		for _, p := range written {
			fmt.Fprintf(stderr, "Wrote %s\n", p)
		}
	}

	if opts.summary {
		if err := printSummary(stdout, export.GenerateSummary(s)); err != nil {
			fmt.Fprintf(stderr, "Error rendering summary: %v\n", err)
			return 1
		}
	}

	if opts.noTUI {
		return 0
	}

	m := ui.NewGanttModel(chart, ui.DefaultTheme(lipgloss.NewRenderer(os.Stdout)))
	m.SetShowHelp(cfg.UI.ShowHelp)
	if err := runTUIProgram(m, cfg.UI.Mouse); err != nil {
		fmt.Fprintf(stderr, "Error running chart window: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	fs := flag.NewFlagSet("jspgantt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.exports, "export", "Write a snapshot (.svg, .png or .html); repeatable or comma-separated")
	seed := fs.Uint64("seed", 0, "Seed for reproducible job colors (overrides palette.seed)")
	fs.IntVar(&opts.width, "width", 0, "Snapshot width in pixels (default 1200)")
	fs.BoolVar(&opts.summary, "summary", false, "Print a markdown report of the schedule")
	fs.BoolVar(&opts.noTUI, "no-tui", false, "Skip the interactive window")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/jspgantt/config.yaml)")
	fs.BoolVar(&opts.saveConfig, "write-config", false, "Write the effective config (with -seed applied) and exit")
	help := fs.Bool("help", false, "Show help")
	versionFlag := fs.Bool("version", false, "Show version")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText+"\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if *help {
		fs.SetOutput(stdout)
		fs.Usage()
		return opts, 0, true
	}
	if *versionFlag {
		fmt.Fprintf(stdout, "jspgantt %s\n", version.Version)
		return opts, 0, true
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: expected at most one schedule file, got %d\n", fs.NArg())
		return opts, 2, true
	}
	if opts.width < 0 {
		fmt.Fprintln(stderr, "Error: -width must not be negative")
		return opts, 2, true
	}

	opts.file = fs.Arg(0)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	opts.seed = *seed
	return opts, 0, false
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// writeConfig persists cfg to -config, or to the XDG config path when no
// -config was given.
func writeConfig(opts options, cfg config.Config, stderr io.Writer) int {
	if opts.seedSet {
		seed := opts.seed
		cfg.Palette.Seed = &seed
	}

	path := opts.configPath
	var err error
	if path == "" {
		path = config.ConfigPath()
		err = config.Save(cfg)
	} else {
		err = config.SaveTo(cfg, path)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing config: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "Wrote %s\n", path)
	return 0
}

// choosePalette prefers -seed, then palette.seed from the config, then
// fresh random colors.
func choosePalette(opts options, cfg config.Config) palette.Palette {
	switch {
	case opts.seedSet:
		return palette.Seeded(opts.seed)
	case cfg.Palette.Seed != nil:
		return palette.Seeded(*cfg.Palette.Seed)
	default:
		return palette.NewRandom()
	}
}

// printSummary writes the markdown report, rendered by glamour when w is a
// terminal and raw otherwise so it can be piped into other tools.
func printSummary(w io.Writer, md string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	width := 100
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		width = cols
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func runTUIProgram(m ui.GanttModel, mouse bool) error {
	popts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		popts = append(popts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, popts...)

	// Debug lines would tear the alternate screen; hold them until exit.
	if debug.Enabled() {
		var held bytes.Buffer
		debug.SetOutput(&held)
		defer func() {
			debug.SetOutput(os.Stderr)
			_, _ = os.Stderr.Write(held.Bytes())
		}()
	}

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set JSPGANTT_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("JSPGANTT_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
