package automaton

import (
	"fmt"
	"io"
)

// WriteTo writes a human-readable listing of the DFA's states and edges to
// w, using print to render each character label. The exact textual format
// is not contractual; this is for debugging only and is never
// golden-tested.
func (d *DFA[C]) WriteTo(w io.Writer, print func(io.Writer, C) error) error {
	for id := range d.final {
		if _, err := fmt.Fprintf(w, "state %d final=%v:\n", id, d.final[id]); err != nil {
			return err
		}
		for _, e := range d.edges[id] {
			if _, err := fmt.Fprintf(w, "  -> %d on ", e.next); err != nil {
				return err
			}
			if err := print(w, e.c); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if d.otherwise[id] >= 0 {
			if _, err := fmt.Fprintf(w, "  otherwise -> %d\n", d.otherwise[id]); err != nil {
				return err
			}
		}
	}
	return nil
}
