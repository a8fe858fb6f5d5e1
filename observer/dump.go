package observer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sarchlab/nanopond/pond"
)

// alphabet is the 32-character genome glyph set used by both the dump
// writer and any visualiser wanting a human-readable instruction display
// (spec §6).
const alphabet = "0123456789abcdefghijklmnopqrstuv"

// dumpCell writes one row: id,parent_id,lineage,generation,logo_char,
// facing_char,<genome>, with runs of STOP collapsed — the first STOP of a
// run is shown, up to three more print as '.', the remainder of the run is
// dropped entirely (SPEC_FULL.md §C.3; ported from dumpCell() bit for bit).
func dumpCell(w io.Writer, c *pond.Cell) {
	fmt.Fprintf(w, "%d,%d,%d,%d,%c,%c,",
		c.ID, c.ParentID, c.Lineage, c.Generation,
		alphabet[c.Logo], alphabet[c.Facing])

	stopCount := 0
	for _, codon := range c.Genome {
		if codon == pond.StopOpcode {
			stopCount++
		} else {
			stopCount = 0
		}
		if stopCount >= 5 {
			continue
		}
		if stopCount > 1 {
			fmt.Fprint(w, ".")
		} else {
			fmt.Fprintf(w, "%c", alphabet[codon&pond.FiveBitMask])
		}
	}
	fmt.Fprint(w, "\n")
}

// dumpPond writes every viable cell of p to dir/<tick>.dump.csv. A failed
// open is logged and otherwise ignored — the engine must keep running
// regardless (spec §7) — and the file is always closed before returning
// (spec §5: "opened, fully written, and closed within one observer call").
func dumpPond(p *pond.Pond, tick uint64, dir string) {
	path := filepath.Join(dir, fmt.Sprintf("%d.dump.csv", tick))

	f, err := os.Create(path)
	if err != nil {
		slog.Error("could not open dump file for writing", "path", path, "error", err)
		return
	}
	defer f.Close()

	slog.Info("dumping viable cells", "path", path)
	p.Each(func(_, _ int, c *pond.Cell) {
		if c.Energy > 0 && c.Viable() {
			dumpCell(f, c)
		}
	})
}
