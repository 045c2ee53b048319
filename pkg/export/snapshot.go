package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/jspgantt/pkg/debug"
	"github.com/vanderheijden86/jspgantt/pkg/gantt"
)

// Supported snapshot formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatHTML = "html"
)

// SnapshotOptions controls chart snapshot export behaviour.
type SnapshotOptions struct {
	Path          string       // Output path; format inferred from extension when Format empty
	Format        string       // "svg", "png" or "html" (case-insensitive). If empty, inferred from Path.
	DefaultFormat string       // Used when neither Format nor the extension decides; "svg" if empty
	Width         int          // Image width in pixels; height follows the machine count
	Chart         *gantt.Chart // Chart to render, including its current hover borders
}

// SaveSnapshot renders the chart to opts.Path and returns the path written,
// which gains an extension when the given one had none.
func SaveSnapshot(opts SnapshotOptions) (string, error) {
	if opts.Chart == nil {
		return "", fmt.Errorf("chart is required for snapshot export")
	}
	if opts.Path == "" {
		return "", fmt.Errorf("output path is required")
	}

	format, path, err := resolveFormat(opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	switch format {
	case FormatSVG:
		err = WriteSVG(file, opts.Chart, opts.Width)
	case FormatPNG:
		err = WritePNG(file, opts.Chart, opts.Width)
	case FormatHTML:
		err = WriteHTML(file, opts.Chart, opts.Width)
	default:
		err = fmt.Errorf("unhandled format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	debug.Log("exported %s snapshot to %s", format, path)
	return path, file.Close()
}

func resolveFormat(opts SnapshotOptions) (format, path string, err error) {
	path = opts.Path
	format = strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = FormatSVG
		case ".png":
			format = FormatPNG
		case ".html", ".htm":
			format = FormatHTML
		case "":
			format = strings.ToLower(opts.DefaultFormat)
			if format == "" {
				format = FormatSVG
			}
			path = path + "." + format
		default:
			return "", "", fmt.Errorf("cannot infer format from %q (want .svg, .png or .html)", path)
		}
	}
	switch format {
	case FormatSVG, FormatPNG, FormatHTML:
		return format, path, nil
	default:
		return "", "", fmt.Errorf("unsupported format %q (want svg, png or html)", format)
	}
}

// SaveAll writes one snapshot per path concurrently and returns the written
// paths in input order. The chart is only read, so the renders share it.
func SaveAll(ctx context.Context, c *gantt.Chart, paths []string, defaultFormat string, width int) ([]string, error) {
	written := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := SaveSnapshot(SnapshotOptions{
				Path:          p,
				DefaultFormat: defaultFormat,
				Width:         width,
				Chart:         c,
			})
			if err != nil {
				return err
			}
			written[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}
