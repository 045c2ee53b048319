package gantt

import (
	"fmt"
	"strconv"

	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// HoverState is Idle (Hovering false) or Hovering(Index).
type HoverState struct {
	Hovering bool
	Index    int
}

func (h HoverState) String() string {
	if !h.Hovering {
		return "idle"
	}
	return "hovering(" + strconv.Itoa(h.Index) + ")"
}

// StatusText formats the status line shown for a hovered operation.
func StatusText(op model.Operation) string {
	return fmt.Sprintf("job: %d  operation: %d  [%g,%g]", op.Job, op.Index, op.Start, op.End)
}

// HitTest returns the index of the rectangle under (x, y) in data
// coordinates, or -1. Later rectangles are drawn on top and win.
func (c *Chart) HitTest(x, y float64) int {
	for i := len(c.Rects) - 1; i >= 0; i-- {
		if c.Rects[i].Contains(x, y) {
			return i
		}
	}
	return -1
}

// PointerMoved handles one pointer-motion event at data coordinates (x, y).
// It is evaluated on every event and is idempotent for a fixed position.
func (c *Chart) PointerMoved(x, y float64) HoverState {
	if i := c.HitTest(x, y); i >= 0 {
		c.HoverIndex(i)
	} else {
		c.Leave()
	}
	return c.State()
}

// HoverIndex enters Hovering(i): rectangle i gets a bold border, every other
// rectangle of the same job a highlight border, all others none. The status
// text describes operation i. An out-of-range i behaves like Leave.
func (c *Chart) HoverIndex(i int) {
	if i < 0 || i >= len(c.Rects) {
		c.Leave()
		return
	}
	job := c.Rects[i].Op.Job
	for j := range c.Rects {
		switch {
		case j == i:
			c.Rects[j].Border = BorderBold
		case c.Rects[j].Op.Job == job:
			c.Rects[j].Border = BorderHighlight
		default:
			c.Rects[j].Border = BorderNone
		}
	}
	c.hovered = i
	c.status = StatusText(c.Rects[i].Op)
}

// Leave enters Idle and clears every border. The status text keeps its last
// value.
func (c *Chart) Leave() {
	for j := range c.Rects {
		c.Rects[j].Border = BorderNone
	}
	c.hovered = -1
}

// State returns the current hover state.
func (c *Chart) State() HoverState {
	if c.hovered < 0 {
		return HoverState{}
	}
	return HoverState{Hovering: true, Index: c.hovered}
}

// Status returns the status text; empty until the first hover.
func (c *Chart) Status() string {
	return c.status
}

// Highlighted returns the indices of rectangles with any border, ascending.
func (c *Chart) Highlighted() []int {
	var out []int
	for i, r := range c.Rects {
		if r.Border != BorderNone {
			out = append(out, i)
		}
	}
	return out
}
