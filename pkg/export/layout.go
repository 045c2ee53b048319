package export

import (
	"image/color"
	"strconv"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
)

// frame maps chart data coordinates onto an image of Width x Height
// pixels. The plot area sits inside fixed margins that leave room for the
// title, machine labels and time ticks.
type frame struct {
	Width, Height int
	Left, Top     float64
	PlotW, PlotH  float64
	chart         *gantt.Chart
}

const (
	defaultWidth = 1200
	marginLeft   = 110.0
	marginRight  = 24.0
	marginTop    = 64.0
	marginBottom = 44.0
	rowPixels    = 28.0
	minPlotH     = 120.0
)

func newFrame(c *gantt.Chart, width int) frame {
	if width <= 0 {
		width = defaultWidth
	}
	plotH := float64(c.Machines) * rowPixels
	if plotH < minPlotH {
		plotH = minPlotH
	}
	plotW := float64(width) - marginLeft - marginRight
	if plotW < 100 {
		plotW = 100
		width = int(marginLeft + marginRight + plotW)
	}
	return frame{
		Width:  width,
		Height: int(marginTop + plotH + marginBottom),
		Left:   marginLeft,
		Top:    marginTop,
		PlotW:  plotW,
		PlotH:  plotH,
		chart:  c,
	}
}

// X converts a time value to a pixel column.
func (f frame) X(x float64) float64 {
	span := f.chart.XMax - f.chart.XMin
	if span <= 0 {
		span = 1
	}
	return f.Left + (x-f.chart.XMin)/span*f.PlotW
}

// Y converts a row position to a pixel row; larger y is higher up.
func (f frame) Y(y float64) float64 {
	span := f.chart.YMax - f.chart.YMin
	if span <= 0 {
		span = 1
	}
	return f.Top + (f.chart.YMax-y)/span*f.PlotH
}

// box returns the pixel rectangle (top-left origin) for r.
func (f frame) box(r gantt.Rect) (x, y, w, h float64) {
	x = f.X(r.X)
	w = f.X(r.X+r.W) - x
	y = f.Y(r.Y + r.H)
	h = f.Y(r.Y) - y
	return x, y, w, h
}

// inside reports whether a pixel row lies within the plot area; rows for
// machine ids beyond the axis are skipped.
func (f frame) inside(py float64) bool {
	return py >= f.Top-0.5 && py <= f.Top+f.PlotH+0.5
}

var (
	colorBackdrop  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorAxis      = color.RGBA{0x33, 0x33, 0x33, 0xff}
	colorGrid      = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBold      = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorHighlight = color.RGBA{0xe5, 0x1c, 0x23, 0xff}
)

func borderStyle(b gantt.Border) (c color.RGBA, width float64, ok bool) {
	switch b {
	case gantt.BorderBold:
		return colorBold, 3, true
	case gantt.BorderHighlight:
		return colorHighlight, 2, true
	default:
		return color.RGBA{}, 0, false
	}
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
