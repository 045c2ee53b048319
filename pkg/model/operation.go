package model

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every InvariantError so callers can test for it
// with errors.Is.
var ErrInvariant = errors.New("operation invariant violated")

// InvariantError reports an operation whose time span is impossible.
type InvariantError struct {
	Start  float64
	End    float64
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invalid operation [%g,%g]: %s", e.Start, e.End, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// Operation is one scheduled unit of work on a machine. Operations are
// immutable once loaded.
type Operation struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Machine int     `json:"machine"`
	Job     int     `json:"job"` // 1-based
	Index   int     `json:"operation_index"`
}

// NewOperation builds an Operation and enforces the time invariants:
// start >= 0, end >= 0 and start <= end.
func NewOperation(start, end float64, machine, job, index int) (Operation, error) {
	op := Operation{
		Start:   start,
		End:     end,
		Machine: machine,
		Job:     job,
		Index:   index,
	}
	if err := op.Validate(); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// Validate checks the time invariants.
func (o Operation) Validate() error {
	if o.Start < 0 || o.End < 0 {
		return &InvariantError{Start: o.Start, End: o.End, Reason: "operation cannot begin at t < 0"}
	}
	if o.Start > o.End {
		return &InvariantError{Start: o.Start, End: o.End, Reason: "cannot end before started"}
	}
	return nil
}

// Duration returns End - Start.
func (o Operation) Duration() float64 {
	return o.End - o.Start
}

// Contains reports whether t lies inside the closed span [Start, End].
func (o Operation) Contains(t float64) bool {
	return t >= o.Start && t <= o.End
}
