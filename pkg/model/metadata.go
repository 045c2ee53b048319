package model

import (
	"fmt"
	"strconv"
)

// Defaults applied when the input document omits an optional key.
const (
	DefaultTitle    = "Gantt for JSP"
	DefaultMachines = 100
	DefaultJobs     = 100

	// Both counts size per-render tables (row labels, job colors).
	MaxMachines = 10_000
	MaxJobs     = 100_000
)

// Metadata enumerates every chart option the input document may carry.
type Metadata struct {
	Title    string    `json:"title"`
	XTicks   []float64 `json:"xticks,omitempty"` // empty means auto
	Machines int       `json:"machines"`
	Jobs     int       `json:"jobs"`
}

// DefaultMetadata returns Metadata populated with the documented defaults.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:    DefaultTitle,
		Machines: DefaultMachines,
		Jobs:     DefaultJobs,
	}
}

// Validate checks the row and color counts are usable.
func (m Metadata) Validate() error {
	if m.Machines <= 0 {
		return fmt.Errorf("machines must be positive, got %d", m.Machines)
	}
	if m.Machines > MaxMachines {
		return fmt.Errorf("machines must be at most %d, got %d", MaxMachines, m.Machines)
	}
	if m.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", m.Jobs)
	}
	if m.Jobs > MaxJobs {
		return fmt.Errorf("jobs must be at most %d, got %d", MaxJobs, m.Jobs)
	}
	return nil
}

// Labels returns one y-axis label per machine row: machine-1 .. machine-N.
func (m Metadata) Labels() []string {
	labels := make([]string, m.Machines)
	for i := range labels {
		labels[i] = MachineLabel(i + 1)
	}
	return labels
}

// MachineLabel formats the row label for a 1-based machine id.
func MachineLabel(machine int) string {
	return "machine-" + strconv.Itoa(machine)
}
