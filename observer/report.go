package observer

import (
	"fmt"
	"io"

	"github.com/sarchlab/nanopond/vm"
)

// writeReportLine composes one CSV row exactly as doReport()'s fprintf
// does: the same column order and the same literal `|` separator columns
// between stat groups (SPEC_FULL.md §C.5). encoding/csv is deliberately not
// used — its quoting rules would mangle the bare `|` columns — so this
// writes the line by hand, the way the original does with fprintf.
func writeReportLine(w io.Writer, sum Summary, stats *vm.Stats) {
	fmt.Fprintf(w, "%d,%d,%d,%d,%.2f,%.2f,|,%d,%d,%d,%d,|,%d,%d,%d,%d,%d,%d,%d,%d,|,%d,%d,%d,|",
		sum.Tick,
		sum.TotalEnergy,
		sum.MaxCellEnergy,
		sum.MaxLivingCellEnergy,
		sum.MeanLivingEnergy,
		sum.MeanViableEnergy,

		sum.TotalActiveCells,
		sum.TotalLivingCells,
		sum.TotalViableReplicators,
		sum.MaxGeneration,

		stats.MemSpecialReads,
		stats.MemPrivateReads,
		stats.MemOutputReads,
		stats.MemInputReads,
		stats.MemSpecialWrites,
		stats.MemPrivateWrites,
		stats.MemOutputWrites,
		stats.MemInputWrites,

		stats.ViableCellsReplaced,
		stats.ViableCellsKilled,
		stats.ViableCellShares,
	)

	var totalMetabolism float64
	for _, n := range stats.InstructionExec {
		totalMetabolism += float64(n)
		freq := 0.0
		if stats.CellExecutions > 0 {
			freq = float64(n) / float64(stats.CellExecutions)
		}
		fmt.Fprintf(w, ",%.4f", freq)
	}

	metabolism := 0.0
	if stats.CellExecutions > 0 {
		metabolism = totalMetabolism / float64(stats.CellExecutions)
	}
	fmt.Fprintf(w, ",%.4f\n", metabolism)
}
