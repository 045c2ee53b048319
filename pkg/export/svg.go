package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
	"github.com/vanderheijden86/jspgantt/pkg/palette"
)

// WriteSVG renders c as a standalone SVG document. Every operation is a
// group carrying its job id as a class and its status line as a tooltip.
func WriteSVG(w io.Writer, c *gantt.Chart, width int) error {
	if c == nil {
		return fmt.Errorf("nil chart")
	}
	f := newFrame(c, width)
	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	writeSVGBody(canvas, f)
	canvas.End()
	return nil
}

func writeSVGBody(canvas *svg.SVG, f frame) {
	c := f.chart
	canvas.Rect(0, 0, f.Width, f.Height, "fill:"+palette.Hex(colorBackdrop))

	canvas.Text(f.Width/2, 32, c.Title,
		fmt.Sprintf("fill:%s;font-size:18px;font-family:serif;text-anchor:middle", palette.Hex(colorText)))
	if status := c.Status(); status != "" {
		canvas.Text(f.Width-int(marginRight), 52, status,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:end", palette.Hex(colorSubtle)))
	}

	bottom := int(f.Top + f.PlotH)
	for _, tick := range c.XTicks {
		if tick < c.XMin || tick > c.XMax {
			continue
		}
		x := int(math.Round(f.X(tick)))
		canvas.Line(x, int(f.Top), x, bottom, "stroke:"+palette.Hex(colorGrid)+";stroke-width:1")
		canvas.Text(x, bottom+18, formatTick(tick),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:serif;text-anchor:middle", palette.Hex(colorText)))
	}

	for i, y := range c.YTicks {
		py := f.Y(y)
		if !f.inside(py) || i >= len(c.YLabels) {
			continue
		}
		canvas.Text(int(f.Left)-8, int(math.Round(py))+4, c.YLabels[i],
			fmt.Sprintf("fill:%s;font-size:12px;font-family:serif;text-anchor:end", palette.Hex(colorText)))
	}

	canvas.Rect(int(f.Left), int(f.Top), int(f.PlotW), int(f.PlotH),
		"fill:none;stroke:"+palette.Hex(colorAxis)+";stroke-width:1")

	for _, r := range c.Rects {
		x, y, w, h := f.box(r)
		if !f.inside(y + h/2) {
			continue
		}
		style := "fill:" + palette.Hex(r.Fill)
		if bc, bw, ok := borderStyle(r.Border); ok {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%g", palette.Hex(bc), bw)
		}
		canvas.Group(fmt.Sprintf(`class="op job-%d"`, r.Op.Job), fmt.Sprintf(`data-index="%d"`, r.Index))
		canvas.Title(gantt.StatusText(r.Op))
		canvas.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Max(1, math.Round(w))), int(math.Round(h)), style)
		canvas.Text(int(math.Round(f.X(r.LabelX))), int(math.Round(f.Y(r.LabelY)))+5, r.Label,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:serif;text-anchor:middle;pointer-events:none", palette.Hex(colorText)))
		canvas.Gend()
	}
}
