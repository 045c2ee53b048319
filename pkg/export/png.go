package export

import (
	"fmt"
	"image/png"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
)

// WritePNG rasterizes c and writes it as PNG.
func WritePNG(w io.Writer, c *gantt.Chart, width int) error {
	if c == nil {
		return fmt.Errorf("nil chart")
	}
	dc := drawPNG(newFrame(c, width))
	return png.Encode(w, dc.Image())
}

func drawPNG(f frame) *gg.Context {
	c := f.chart
	dc := gg.NewContext(f.Width, f.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(c.Title, float64(f.Width)/2, 28, 0.5, 0.5)
	if status := c.Status(); status != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(status, float64(f.Width)-marginRight, 48, 1, 0.5)
	}

	bottom := f.Top + f.PlotH
	dc.SetLineWidth(1)
	for _, tick := range c.XTicks {
		if tick < c.XMin || tick > c.XMax {
			continue
		}
		x := f.X(tick)
		dc.SetColor(colorGrid)
		dc.DrawLine(x, f.Top, x, bottom)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(formatTick(tick), x, bottom+14, 0.5, 0.5)
	}

	dc.SetColor(colorText)
	for i, y := range c.YTicks {
		py := f.Y(y)
		if !f.inside(py) || i >= len(c.YLabels) {
			continue
		}
		dc.DrawStringAnchored(c.YLabels[i], f.Left-8, py, 1, 0.5)
	}

	dc.SetColor(colorAxis)
	dc.DrawRectangle(f.Left, f.Top, f.PlotW, f.PlotH)
	dc.Stroke()

	for _, r := range c.Rects {
		x, y, w, h := f.box(r)
		if !f.inside(y + h/2) {
			continue
		}
		if w < 1 {
			w = 1
		}
		dc.SetColor(r.Fill)
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
		if bc, bw, ok := borderStyle(r.Border); ok {
			dc.SetColor(bc)
			dc.SetLineWidth(bw)
			dc.DrawRectangle(x, y, w, h)
			dc.Stroke()
			dc.SetLineWidth(1)
		}
		dc.SetColor(colorText)
		dc.DrawStringAnchored(r.Label, f.X(r.LabelX), f.Y(r.LabelY), 0.5, 0.5)
	}
	return dc
}
