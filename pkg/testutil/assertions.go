package testutil

import (
	"testing"

	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// AssertOperationCount verifies the expected number of operations.
func AssertOperationCount(t testing.TB, s *model.Schedule, expected int) {
	t.Helper()
	if s.Len() != expected {
		t.Errorf("expected %d operations, got %d", expected, s.Len())
	}
}

// AssertAllValid verifies every operation satisfies its invariants.
func AssertAllValid(t testing.TB, s *model.Schedule) {
	t.Helper()
	for i, op := range s.Operations {
		if err := op.Validate(); err != nil {
			t.Errorf("operation %d invalid: %v", i, err)
		}
	}
}

// AssertIndicesSequential verifies each job's operation indices are
// 0, 1, 2, ... in document order.
func AssertIndicesSequential(t testing.TB, s *model.Schedule) {
	t.Helper()
	next := make(map[int]int)
	for i, op := range s.Operations {
		if op.Index != next[op.Job] {
			t.Errorf("operation %d (job %d): index %d, want %d", i, op.Job, op.Index, next[op.Job])
		}
		next[op.Job]++
	}
}

// AssertNoMachineOverlap verifies no two operations on one machine overlap.
func AssertNoMachineOverlap(t testing.TB, s *model.Schedule) {
	t.Helper()
	for _, m := range s.MachineIDs() {
		ops := s.OperationsForMachine(m)
		for i := 1; i < len(ops); i++ {
			if ops[i].Start < ops[i-1].End {
				t.Errorf("machine %d: [%g,%g] overlaps [%g,%g]",
					m, ops[i-1].Start, ops[i-1].End, ops[i].Start, ops[i].End)
			}
		}
	}
}

// AssertSameOperations verifies two schedules carry the same operations in
// the same order.
func AssertSameOperations(t testing.TB, got, want *model.Schedule) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("operation count: got %d, want %d", got.Len(), want.Len())
	}
	for i := range want.Operations {
		if got.Operations[i] != want.Operations[i] {
			t.Errorf("operation %d: got %+v, want %+v", i, got.Operations[i], want.Operations[i])
		}
	}
}
