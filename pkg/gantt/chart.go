package gantt

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/vanderheijden86/jspgantt/pkg/debug"
	"github.com/vanderheijden86/jspgantt/pkg/model"
	"github.com/vanderheijden86/jspgantt/pkg/palette"
)

// BarHeight is the vertical extent of every bar, centered on its row.
const BarHeight = 0.5

// ErrJobOutOfRange is returned when an operation's job id has no color.
var ErrJobOutOfRange = errors.New("job id outside palette range")

// Border is the outline state of a rectangle.
type Border int

const (
	BorderNone      Border = iota
	BorderBold             // the hovered rectangle
	BorderHighlight        // other rectangles of the hovered job (red)
)

func (b Border) String() string {
	switch b {
	case BorderBold:
		return "bold"
	case BorderHighlight:
		return "highlight"
	default:
		return "none"
	}
}

// Rect is one drawn operation. Geometry is in data coordinates with (X, Y)
// at the lower-left corner.
type Rect struct {
	Index  int // position of the source operation
	Op     model.Operation
	X, Y   float64
	W, H   float64
	Fill   color.RGBA
	Label  string
	LabelX float64
	LabelY float64
	Border Border
}

// Contains reports whether the data point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return r.Op.Contains(x) && y >= r.Y && y <= r.Y+r.H
}

// Row returns the y position of the row the rectangle sits on.
func (r Rect) Row() float64 {
	return r.Y + r.H/2
}

// Chart is the owned figure for one render: everything a display needs to
// draw the schedule and respond to pointer motion.
type Chart struct {
	Title      string
	XMin, XMax float64
	YMin, YMax float64
	XTicks     []float64
	AutoXTicks bool
	YTicks     []float64
	YLabels    []string
	Rects      []Rect
	Series     Series
	Colors     palette.Map
	Machines   int

	hovered int
	status  string
}

// Build lays out s with the given job colors.
func Build(s *model.Schedule, colors palette.Map) (*Chart, error) {
	if s == nil {
		return nil, errors.New("nil schedule")
	}
	defer debug.LogEnterExit("gantt.Build")()

	meta := s.Metadata
	series := Derive(s)

	c := &Chart{
		Title:    meta.Title,
		XMin:     0,
		XMax:     series.MaxEnd(),
		YMin:     0.5,
		YMax:     float64(meta.Machines) + 0.5,
		YTicks:   series.YPos,
		YLabels:  meta.Labels(),
		Series:   series,
		Colors:   colors,
		Machines: meta.Machines,
		hovered:  -1,
	}
	if c.XMax <= 0 {
		c.XMax = 1
	}
	if len(meta.XTicks) > 0 {
		c.XTicks = append([]float64(nil), meta.XTicks...)
	} else {
		c.XTicks = AutoTicks(c.XMax)
		c.AutoXTicks = true
	}

	c.Rects = make([]Rect, 0, len(s.Operations))
	for i, op := range s.Operations {
		fill, ok := colors.Color(op.Job)
		if !ok {
			return nil, fmt.Errorf("%w: operation %d has job %d, palette covers 1..%d",
				ErrJobOutOfRange, i, op.Job, colors.Len())
		}
		row := RowFor(op.Machine, meta.Machines)
		c.Rects = append(c.Rects, Rect{
			Index:  i,
			Op:     op,
			X:      series.Start[i],
			Y:      row - BarHeight/2,
			W:      series.Duration[i],
			H:      BarHeight,
			Fill:   fill,
			Label:  strconv.Itoa(op.Job),
			LabelX: (series.Start[i] + series.End[i]) / 2,
			LabelY: row,
		})
	}
	debug.Log("built chart %q: %d rects, x=[0,%g], %d rows", c.Title, len(c.Rects), c.XMax, meta.Machines)
	return c, nil
}

// Len returns the number of rectangles.
func (c *Chart) Len() int {
	return len(c.Rects)
}
