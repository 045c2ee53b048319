// Package gantt turns a loaded schedule into an owned Chart value: derived
// series, rectangle geometry in data coordinates, axis setup and the hover
// state machine. Displays and exporters only read from a Chart; nothing in
// this package touches global drawing state.
package gantt

import (
	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// Series holds per-operation arrays aligned by operation position plus the
// row positions of the machine axis.
type Series struct {
	Start    []float64
	End      []float64
	Duration []float64
	YPos     []float64 // machines, machines-1, ..., 1
}

// Derive computes the plotting series for s. It performs no validation
// beyond what the loader already enforced.
func Derive(s *model.Schedule) Series {
	n := len(s.Operations)
	out := Series{
		Start:    make([]float64, n),
		End:      make([]float64, n),
		Duration: make([]float64, n),
		YPos:     make([]float64, s.Metadata.Machines),
	}
	for i, op := range s.Operations {
		out.Start[i] = op.Start
		out.End[i] = op.End
	}
	floats.SubTo(out.Duration, out.End, out.Start)

	for i := range out.YPos {
		out.YPos[i] = float64(s.Metadata.Machines - i)
	}
	return out
}

// Len returns the number of operations in the series.
func (s Series) Len() int {
	return len(s.Start)
}

// MaxEnd returns the latest end time, 0 when empty.
func (s Series) MaxEnd() float64 {
	if len(s.End) == 0 {
		return 0
	}
	return floats.Max(s.End)
}

// TotalDuration sums all operation durations.
func (s Series) TotalDuration() float64 {
	return floats.Sum(s.Duration)
}

// RowFor maps a 1-based machine id to its y position; machine 1 sits at
// the top row.
func RowFor(machine, machines int) float64 {
	return float64(machines - machine + 1)
}
