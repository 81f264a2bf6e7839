package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"galab/internal/stats"
	"galab/internal/storage"
)

// maxGenesShown bounds how many genes of a champion the report prints
const maxGenesShown = 8

// WriteReport renders the final statistics and the hall of fame
func WriteReport(w io.Writer, label string, log []stats.Record, champions []storage.Champion) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(label)
	t.AppendHeader(table.Row{"GEN", "NEVALS", "AVG", "STD", "MIN", "MAX"})
	if len(log) > 0 {
		first, last := log[0], log[len(log)-1]
		t.AppendRow(recordRow(first))
		if last.Generation != first.Generation {
			t.AppendRow(recordRow(last))
		}
	}
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Hall of Fame")
	t.AppendHeader(table.Row{"RANK", "FITNESS", "GENOME"})
	for _, c := range champions {
		t.AppendRow(table.Row{c.Rank, fmt.Sprintf("%.6f", c.Fitness), formatGenome(c.Genome)})
	}
	t.Render()
}

func recordRow(rec stats.Record) table.Row {
	return table.Row{
		rec.Generation,
		rec.Evaluations,
		fmt.Sprintf("%.6f", rec.Mean),
		fmt.Sprintf("%.6f", rec.Std),
		fmt.Sprintf("%.6f", rec.Min),
		fmt.Sprintf("%.6f", rec.Max),
	}
}

func formatGenome(genome []float64) string {
	n := min(len(genome), maxGenesShown)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.3f", genome[i])
	}
	s := "[" + strings.Join(parts, " ")
	if len(genome) > n {
		s += fmt.Sprintf(" ... +%d", len(genome)-n)
	}
	return s + "]"
}
