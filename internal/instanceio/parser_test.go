package instanceio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kosarica/wavepick/internal/waveopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstance_Trivial(t *testing.T) {
	src := strings.NewReader("1 1 1\n1 0 3\n1 0 5\n1 10\n")

	in, err := ParseInstance(src)
	require.NoError(t, err)

	assert.Equal(t, 1, in.NumOrders())
	assert.Equal(t, 1, in.NumItems())
	assert.Equal(t, 1, in.NumAisles())
	assert.Equal(t, 1, in.LB())
	assert.Equal(t, 10, in.UB())
}

func TestParseInstance_TolerantWhitespace(t *testing.T) {
	src := strings.NewReader("2  2   2\n\n1 0 5\n1 1 5\n\n1 0 5\n1 1 5\n\n5 5\n")

	in, err := ParseInstance(src)
	require.NoError(t, err)
	assert.Equal(t, 2, in.NumOrders())
}

func TestParseInstance_BadHeader(t *testing.T) {
	src := strings.NewReader("not a header\n")
	_, err := ParseInstance(src)
	assert.Error(t, err)
}

func TestParseInstance_MismatchedPairCount(t *testing.T) {
	src := strings.NewReader("1 1 1\n2 0 3\n1 0 5\n1 10\n")
	_, err := ParseInstance(src)
	assert.Error(t, err)
}

func TestParseInstance_RoundTrip(t *testing.T) {
	src := "3 3 3\n1 0 10\n2 1 1 2 1\n1 0 2\n1 0 12\n1 1 5\n1 2 5\n10 12\n"

	in, err := ParseInstance(strings.NewReader(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteInstance(&buf, in))

	reparsed, err := ParseInstance(&buf)
	require.NoError(t, err)

	assert.Equal(t, in.NumOrders(), reparsed.NumOrders())
	assert.Equal(t, in.NumItems(), reparsed.NumItems())
	assert.Equal(t, in.NumAisles(), reparsed.NumAisles())
	assert.Equal(t, in.LB(), reparsed.LB())
	assert.Equal(t, in.UB(), reparsed.UB())
	for o := 0; o < in.NumOrders(); o++ {
		assert.Equal(t, in.Order(waveopt.OrderID(o)), reparsed.Order(waveopt.OrderID(o)))
	}
}
