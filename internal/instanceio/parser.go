// Package instanceio reads and writes the plain-text instance and solution
// file formats described by the wave-picking solver's external contract.
// Parsing and writing are solver-external concerns: internal/waveopt never
// imports this package, and this package only ever constructs a waveopt.Instance
// through its public constructor.
package instanceio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kosarica/wavepick/internal/waveopt"
)

// ParseInstance reads the instance file format:
//
//	line 1:            numOrders numItems numAisles
//	next numOrders:     k  i1 q1  i2 q2 ... ik qk
//	next numAisles:     same shape
//	final line:         LB UB
//
// IDs and counts are whitespace-delimited; any run of spaces or tabs
// separates fields.
func ParseInstance(r io.Reader) (*waveopt.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, err := nextNonEmptyLine(sc)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	numOrders, numItems, numAisles, err := parseThreeInts(header)
	if err != nil {
		return nil, fmt.Errorf("parsing header %q: %w", header, err)
	}

	orders, err := parseDemandLines(sc, numOrders, "order")
	if err != nil {
		return nil, err
	}
	aisles, err := parseDemandLines(sc, numAisles, "aisle")
	if err != nil {
		return nil, err
	}

	boundsLine, err := nextNonEmptyLine(sc)
	if err != nil {
		return nil, fmt.Errorf("reading bounds line: %w", err)
	}
	lb, ub, err := parseTwoInts(boundsLine)
	if err != nil {
		return nil, fmt.Errorf("parsing bounds %q: %w", boundsLine, err)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning instance file: %w", err)
	}

	return waveopt.NewInstance(numItems, numOrders, numAisles, lb, ub, orders, aisles)
}

func parseDemandLines(sc *bufio.Scanner, count int, label string) ([][]waveopt.Demand, error) {
	lines := make([][]waveopt.Demand, count)
	for i := 0; i < count; i++ {
		line, err := nextNonEmptyLine(sc)
		if err != nil {
			return nil, fmt.Errorf("reading %s line %d: %w", label, i, err)
		}
		demands, err := parseDemandLine(line)
		if err != nil {
			return nil, fmt.Errorf("parsing %s line %d %q: %w", label, i, line, err)
		}
		lines[i] = demands
	}
	return lines, nil
}

func parseDemandLine(line string) ([]waveopt.Demand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty line")
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("pair count: %w", err)
	}
	if len(fields) != 1+2*k {
		return nil, fmt.Errorf("expected %d item/qty pairs, got %d fields", k, len(fields)-1)
	}
	demands := make([]waveopt.Demand, k)
	for p := 0; p < k; p++ {
		item, err := strconv.Atoi(fields[1+2*p])
		if err != nil {
			return nil, fmt.Errorf("item id at pair %d: %w", p, err)
		}
		qty, err := strconv.Atoi(fields[2+2*p])
		if err != nil {
			return nil, fmt.Errorf("quantity at pair %d: %w", p, err)
		}
		demands[p] = waveopt.Demand{Item: waveopt.ItemID(item), Qty: qty}
	}
	return demands, nil
}

func parseThreeInts(line string) (int, int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return a, b, c, nil
}

func parseTwoInts(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// nextNonEmptyLine skips blank lines, tolerating trailing whitespace-only
// lines at section boundaries without treating them as data.
func nextNonEmptyLine(sc *bufio.Scanner) (string, error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
