package instanceio

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/kosarica/wavepick/internal/waveopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSolution(t *testing.T) {
	idx := &waveopt.IndexBundle{TotalUnits: []int{3, 5}}
	sol := waveopt.NewSolution(idx)
	sol.AddOrder(1)
	sol.AddOrder(0)
	sol.ReplaceCover(map[waveopt.AisleID]struct{}{2: {}, 0: {}})

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, sol))

	lines := splitLines(t, buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "2", lines[0])
	assert.Equal(t, "0 1", lines[1])
	assert.Equal(t, "2", lines[2])
	assert.Equal(t, "0 2", lines[3])
}

func TestWriteSolution_Empty(t *testing.T) {
	idx := &waveopt.IndexBundle{}
	sol := waveopt.NewSolution(idx)

	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, sol))

	lines := splitLines(t, buf.String())
	require.Len(t, lines, 4)
	assert.Equal(t, "0", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "0", lines[2])
	assert.Equal(t, "", lines[3])
}

func splitLines(t *testing.T, s string) []string {
	t.Helper()
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}
