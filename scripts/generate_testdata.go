//go:build ignore

// generate_testdata.go creates standard schedule datasets for benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.json   (10 machines x 10 jobs)
//	testdata/benchmark/medium.json  (50 machines x 50 jobs)
//	testdata/benchmark/large.json   (100 machines x 100 jobs)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/jspgantt/pkg/testutil"
)

type datasetSpec struct {
	name     string
	machines int
	jobs     int
}

var datasets = []datasetSpec{
	{"small", 10, 10},
	{"medium", 50, 50},
	{"large", 100, 100},
}

func main() {
	outputDir := filepath.Join("testdata", "benchmark")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d machines, %d jobs)...\n", ds.name, ds.machines, ds.jobs)

		gen := testutil.New(testutil.GeneratorConfig{
			Seed:        int64(ds.machines*1000 + ds.jobs), // Reproducible per-size
			Machines:    ds.machines,
			Jobs:        ds.jobs,
			MaxDuration: 20,
			Title:       fmt.Sprintf("Benchmark %s", ds.name),
		})
		s := gen.Schedule()

		path := filepath.Join(outputDir, ds.name+".json")
		if err := os.WriteFile(path, testutil.Document(s), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("  Wrote %s (%d operations, makespan %g)\n", path, s.Len(), s.MaxEnd())
	}

	fmt.Println("\nDone! Load a dataset with: jspgantt testdata/benchmark/medium.json")
}
