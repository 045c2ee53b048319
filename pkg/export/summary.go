package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/jspgantt/pkg/gantt"
	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// MachineStats aggregates one machine's load.
type MachineStats struct {
	Machine     int
	Operations  int
	Busy        float64
	Utilization float64 // Busy / makespan; 0 when the makespan is 0
}

// JobStats aggregates one job's route through the shop.
type JobStats struct {
	Job        int
	Operations int
	Start      float64
	End        float64
	Processing float64
}

// Span returns End - Start.
func (j JobStats) Span() float64 { return j.End - j.Start }

// ScheduleStats is the numeric content of the summary report.
type ScheduleStats struct {
	Makespan   float64
	Processing float64 // sum of every operation's duration
	Machines   []MachineStats
	Jobs     []JobStats
}

// ComputeStats derives per-machine and per-job figures from s.
func ComputeStats(s *model.Schedule) ScheduleStats {
	stats := ScheduleStats{
		Makespan:   s.MaxEnd(),
		Processing: gantt.Derive(s).TotalDuration(),
	}

	for _, m := range s.MachineIDs() {
		ms := MachineStats{Machine: m}
		for _, op := range s.OperationsForMachine(m) {
			ms.Operations++
			ms.Busy += op.Duration()
		}
		if stats.Makespan > 0 {
			ms.Utilization = ms.Busy / stats.Makespan
		}
		stats.Machines = append(stats.Machines, ms)
	}

	for _, j := range s.JobIDs() {
		ops := s.OperationsForJob(j)
		js := JobStats{Job: j, Operations: len(ops), Start: ops[0].Start, End: ops[0].End}
		for _, op := range ops {
			js.Processing += op.Duration()
			if op.Start < js.Start {
				js.Start = op.Start
			}
			if op.End > js.End {
				js.End = op.End
			}
		}
		stats.Jobs = append(stats.Jobs, js)
	}
	return stats
}

// GenerateSummary creates a markdown report of the schedule: headline
// figures, machine load, job spans and a Mermaid gantt of the same data.
func GenerateSummary(s *model.Schedule) string {
	stats := ComputeStats(s)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", s.Metadata.Title))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Operations | %d |\n", s.Len()))
	sb.WriteString(fmt.Sprintf("| Jobs | %d |\n", len(stats.Jobs)))
	sb.WriteString(fmt.Sprintf("| Machines used | %d of %d |\n", len(stats.Machines), s.Metadata.Machines))
	sb.WriteString(fmt.Sprintf("| Makespan | %s |\n", formatTick(stats.Makespan)))
	sb.WriteString(fmt.Sprintf("| Total processing | %s |\n\n", formatTick(stats.Processing)))

	if s.Len() == 0 {
		sb.WriteString("*No operations scheduled.*\n")
		return sb.String()
	}

	sb.WriteString("## Machines\n\n")
	sb.WriteString("| Machine | Operations | Busy | Utilization |\n|---------|-----------|------|-------------|\n")
	for _, m := range stats.Machines {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
			model.MachineLabel(m.Machine), m.Operations, formatTick(m.Busy), formatPercent(m.Utilization, stats.Makespan)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Jobs\n\n")
	sb.WriteString("| Job | Operations | Start | End | Span | Processing |\n|-----|-----------|-------|-----|------|------------|\n")
	for _, j := range stats.Jobs {
		sb.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %s | %s |\n",
			j.Job, j.Operations, formatTick(j.Start), formatTick(j.End), formatTick(j.Span()), formatTick(j.Processing)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Timeline\n\n")
	sb.WriteString("```mermaid\n")
	sb.WriteString(GenerateMermaidGantt(s))
	sb.WriteString("```\n")
	return sb.String()
}

func formatPercent(v, makespan float64) string {
	if makespan <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
