package model

import "sort"

// Schedule is a loaded JSP solution: operations in document order plus the
// chart metadata that came with them.
type Schedule struct {
	Operations []Operation
	Metadata   Metadata
}

// Len returns the number of operations.
func (s *Schedule) Len() int {
	return len(s.Operations)
}

// MaxEnd returns the latest end time, or 0 for an empty schedule.
func (s *Schedule) MaxEnd() float64 {
	var maxEnd float64
	for _, op := range s.Operations {
		if op.End > maxEnd {
			maxEnd = op.End
		}
	}
	return maxEnd
}

// JobIDs returns the distinct job ids present, ascending.
func (s *Schedule) JobIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, op := range s.Operations {
		if !seen[op.Job] {
			seen[op.Job] = true
			ids = append(ids, op.Job)
		}
	}
	sort.Ints(ids)
	return ids
}

// MachineIDs returns the distinct machine ids present, ascending.
func (s *Schedule) MachineIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, op := range s.Operations {
		if !seen[op.Machine] {
			seen[op.Machine] = true
			ids = append(ids, op.Machine)
		}
	}
	sort.Ints(ids)
	return ids
}

// OperationsForJob returns the operations of one job in operation index
// order.
func (s *Schedule) OperationsForJob(job int) []Operation {
	var ops []Operation
	for _, op := range s.Operations {
		if op.Job == job {
			ops = append(ops, op)
		}
	}
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Index < ops[j].Index })
	return ops
}

// OperationsForMachine returns the operations on one machine ordered by
// start time.
func (s *Schedule) OperationsForMachine(machine int) []Operation {
	var ops []Operation
	for _, op := range s.Operations {
		if op.Machine == machine {
			ops = append(ops, op)
		}
	}
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Start < ops[j].Start })
	return ops
}
