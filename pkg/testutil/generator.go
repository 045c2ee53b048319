// Package testutil provides schedule fixture generators for tests.
// Generators seeded with a non-zero value produce deterministic output.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	json "github.com/goccy/go-json"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// GeneratorConfig controls schedule generation.
type GeneratorConfig struct {
	Seed        int64 // Random seed for determinism (0 = use current time)
	Machines    int   // Machine count (default 4)
	Jobs        int   // Job count (default 3)
	OpsPerJob   int   // Operations per job (default = Machines)
	MaxDuration int   // Upper bound for a single operation's duration (default 9)
	Title       string
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42, // Deterministic
		Machines:    4,
		Jobs:        3,
		MaxDuration: 9,
	}
}

// Generator creates job-shop schedules.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Machines <= 0 {
		cfg.Machines = 4
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 3
	}
	if cfg.OpsPerJob <= 0 {
		cfg.OpsPerJob = cfg.Machines
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = 9
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Schedule builds a feasible schedule: every job visits OpsPerJob machines
// in a random route, operations of a job never overlap, and no machine runs
// two operations at once. Operations are emitted round-robin across jobs so
// operation indices interleave in document order.
func (g *Generator) Schedule() *model.Schedule {
	routes := make([][]int, g.cfg.Jobs)
	for j := range routes {
		perm := g.rng.Perm(g.cfg.Machines)
		route := make([]int, g.cfg.OpsPerJob)
		for k := range route {
			route[k] = perm[k%len(perm)] + 1
		}
		routes[j] = route
	}

	jobReady := make([]int, g.cfg.Jobs)
	machineReady := make([]int, g.cfg.Machines+1)
	var ops []model.Operation
	for k := 0; k < g.cfg.OpsPerJob; k++ {
		for j := 0; j < g.cfg.Jobs; j++ {
			m := routes[j][k]
			start := max(jobReady[j], machineReady[m])
			end := start + 1 + g.rng.Intn(g.cfg.MaxDuration)
			jobReady[j] = end
			machineReady[m] = end
			ops = append(ops, model.Operation{
				Start:   float64(start),
				End:     float64(end),
				Machine: m,
				Job:     j + 1,
				Index:   k,
			})
		}
	}

	meta := model.DefaultMetadata()
	meta.Machines = g.cfg.Machines
	meta.Jobs = g.cfg.Jobs
	if g.cfg.Title != "" {
		meta.Title = g.cfg.Title
	}
	return &model.Schedule{Operations: ops, Metadata: meta}
}

// RoundTrip returns the three-operation schedule used throughout the tests:
// two job-1 operations on machine 1 and one job-2 operation on machine 2.
func RoundTrip() *model.Schedule {
	meta := model.DefaultMetadata()
	meta.Machines = 2
	meta.Jobs = 2
	return &model.Schedule{
		Operations: []model.Operation{
			{Start: 0, End: 3, Machine: 1, Job: 1, Index: 0},
			{Start: 3, End: 5, Machine: 1, Job: 1, Index: 1},
			{Start: 0, End: 4, Machine: 2, Job: 2, Index: 0},
		},
		Metadata: meta,
	}
}

type docPackage struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Machine int     `json:"machine"`
	Job     int     `json:"job"`
}

type document struct {
	Title    string       `json:"title"`
	XTicks   []float64    `json:"xticks,omitempty"`
	Machines int          `json:"machines"`
	Jobs     int          `json:"jobs"`
	Packages []docPackage `json:"packages"`
}

// Document encodes s in the loader's input format. Operation indices are
// not part of the format and are dropped.
func Document(s *model.Schedule) []byte {
	doc := document{
		Title:    s.Metadata.Title,
		XTicks:   s.Metadata.XTicks,
		Machines: s.Metadata.Machines,
		Jobs:     s.Metadata.Jobs,
		Packages: make([]docPackage, len(s.Operations)),
	}
	for i, op := range s.Operations {
		doc.Packages[i] = docPackage{Start: op.Start, End: op.End, Machine: op.Machine, Job: op.Job}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode document: %v", err))
	}
	return data
}

// ScheduleGen draws arbitrary valid schedules for property tests. Unlike
// Generator it does not guarantee machine feasibility, only the operation
// invariants and in-range machine and job ids.
func ScheduleGen() *rapid.Generator[*model.Schedule] {
	return rapid.Custom(func(t *rapid.T) *model.Schedule {
		machines := rapid.IntRange(1, 12).Draw(t, "machines")
		jobs := rapid.IntRange(1, 12).Draw(t, "jobs")
		n := rapid.IntRange(0, 40).Draw(t, "ops")

		nextIndex := make(map[int]int)
		ops := make([]model.Operation, n)
		for i := range ops {
			start := rapid.IntRange(0, 500).Draw(t, "start")
			length := rapid.IntRange(0, 50).Draw(t, "length")
			job := rapid.IntRange(1, jobs).Draw(t, "job")
			ops[i] = model.Operation{
				Start:   float64(start),
				End:     float64(start + length),
				Machine: rapid.IntRange(1, machines).Draw(t, "machine"),
				Job:     job,
				Index:   nextIndex[job],
			}
			nextIndex[job]++
		}

		meta := model.DefaultMetadata()
		meta.Machines = machines
		meta.Jobs = jobs
		return &model.Schedule{Operations: ops, Metadata: meta}
	})
}
