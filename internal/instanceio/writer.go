package instanceio

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/kosarica/wavepick/internal/waveopt"
)

// WriteSolution emits the solution file format:
//
//	line 1: count of selected orders
//	line 2: space-separated selected OrderIds, ascending
//	line 3: count of visited aisles
//	line 4: space-separated visited AisleIds, ascending
func WriteSolution(w io.Writer, sol *waveopt.Solution) error {
	bw := bufio.NewWriter(w)

	orders := sol.Orders()
	if _, err := fmt.Fprintln(bw, len(orders)); err != nil {
		return err
	}
	if err := writeIntLine(bw, len(orders), func(i int) int { return int(orders[i]) }); err != nil {
		return err
	}

	aisles := sol.Aisles()
	if _, err := fmt.Fprintln(bw, len(aisles)); err != nil {
		return err
	}
	if err := writeIntLine(bw, len(aisles), func(i int) int { return int(aisles[i]) }); err != nil {
		return err
	}

	return bw.Flush()
}

func writeIntLine(w *bufio.Writer, n int, at func(i int) int) error {
	for i := 0; i < n; i++ {
		if i > 0 {
			if _, err := w.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d", at(i)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

// WriteInstance re-emits an Instance in the canonical instance file format
// (P6, parser round-trip). Only the parser round-trip test calls it; no CLI
// subcommand uses it.
func WriteInstance(w io.Writer, in *waveopt.Instance) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d %d\n", in.NumOrders(), in.NumItems(), in.NumAisles()); err != nil {
		return err
	}
	for o := 0; o < in.NumOrders(); o++ {
		if err := writeDemandLine(bw, in.Order(waveopt.OrderID(o))); err != nil {
			return err
		}
	}
	for a := 0; a < in.NumAisles(); a++ {
		if err := writeDemandLine(bw, in.Aisle(waveopt.AisleID(a))); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "%d %d\n", in.LB(), in.UB()); err != nil {
		return err
	}

	return bw.Flush()
}

// ParseSolution reads the solution file format (the inverse of
// WriteSolution) and materializes it as a Solution bound to idx, so its
// cached TotalUnits stays consistent with idx.TotalUnits.
func ParseSolution(r io.Reader, idx *waveopt.IndexBundle) (*waveopt.Solution, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	orderIDs, err := readIDLine(sc, "order")
	if err != nil {
		return nil, err
	}
	aisleIDs, err := readIDLine(sc, "aisle")
	if err != nil {
		return nil, err
	}

	sol := waveopt.NewSolution(idx)
	for _, o := range orderIDs {
		sol.AddOrder(waveopt.OrderID(o))
	}
	cover := make(map[waveopt.AisleID]struct{}, len(aisleIDs))
	for _, a := range aisleIDs {
		cover[waveopt.AisleID(a)] = struct{}{}
	}
	sol.ReplaceCover(cover)

	return sol, nil
}

// readIDLine reads a "count" line followed by a line of that many
// space-separated IDs (the count line's values line may be blank when
// count is 0).
func readIDLine(sc *bufio.Scanner, label string) ([]int, error) {
	countLine, err := nextNonEmptyLine(sc)
	if err != nil {
		return nil, fmt.Errorf("reading %s count: %w", label, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("parsing %s count %q: %w", label, countLine, err)
	}
	if count == 0 {
		return nil, nil
	}

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("missing %s id line", label)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != count {
		return nil, fmt.Errorf("expected %d %s ids, got %d", count, label, len(fields))
	}
	ids := make([]int, count)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s id %d: %w", label, i, err)
		}
		ids[i] = v
	}
	return ids, nil
}

func writeDemandLine(w *bufio.Writer, demand map[waveopt.ItemID]int) error {
	items := make([]int, 0, len(demand))
	for item := range demand {
		items = append(items, int(item))
	}
	sort.Ints(items)

	if _, err := fmt.Fprintf(w, "%d", len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, " %d %d", item, demand[waveopt.ItemID(item)]); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\n")
	return err
}

