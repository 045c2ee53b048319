package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vanderheijden86/jspgantt/pkg/model"
)

// sanitizeMermaidText prepares text for a Mermaid gantt line, where ':'
// and '#' carry meaning.
func sanitizeMermaidText(text string) string {
	replacer := strings.NewReplacer(
		":", " ",
		"#", "",
		";", ",",
		"\n", " ",
		"\r", "",
	)
	result := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, replacer.Replace(text))
	return strings.TrimSpace(result)
}

// GenerateMermaidGantt renders the schedule as a Mermaid gantt diagram with
// one section per machine. Times are emitted as raw numbers (dateFormat X),
// so the axis shows the schedule's own time units.
func GenerateMermaidGantt(s *model.Schedule) string {
	var sb strings.Builder
	sb.WriteString("gantt\n")
	if title := sanitizeMermaidText(s.Metadata.Title); title != "" {
		sb.WriteString(fmt.Sprintf("    title %s\n", title))
	}
	sb.WriteString("    dateFormat X\n")
	sb.WriteString("    axisFormat %s\n")

	for _, m := range s.MachineIDs() {
		sb.WriteString(fmt.Sprintf("    section %s\n", model.MachineLabel(m)))
		for _, op := range s.OperationsForMachine(m) {
			sb.WriteString(fmt.Sprintf("    J%d op%d :j%do%d, %s, %s\n",
				op.Job, op.Index, op.Job, op.Index, formatTick(op.Start), formatTick(op.End)))
		}
	}
	return sb.String()
}
