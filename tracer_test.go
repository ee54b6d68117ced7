package jqcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTracer struct {
	entered []string
	left    []string
	counts  []int
}

func (r *recordingTracer) Enter(node string, v Val) { r.entered = append(r.entered, node) }
func (r *recordingTracer) Leave(node string, n int) {
	r.left = append(r.left, node)
	r.counts = append(r.counts, n)
}

func TestNoopTracerIsInert(t *testing.T) {
	e := NewEvaluator()
	got := okVals(t, CollectR(e.Run(IntLit(1), NewCtx(), Null())))
	assert.Equal(t, []Val{Int(1)}, got)
}

func TestRunReportsEnterAndLeaveWithOutputCount(t *testing.T) {
	tr := &recordingTracer{}
	e := NewEvaluator()
	e.Tracer = tr

	f := CommaF(IntLit(1), IntLit(2))
	got := CollectR(e.Run(f, NewCtx(), Null()))
	require.Len(t, got, 2)

	require.NotEmpty(t, tr.entered)
	assert.Equal(t, "comma", tr.entered[0])
	// Children's streams are exhausted before their parent's, so the root
	// node's Leave is the last one reported.
	require.NotEmpty(t, tr.left)
	last := len(tr.left) - 1
	assert.Equal(t, "comma", tr.left[last])
	assert.Equal(t, 2, tr.counts[last], "leave count must match the number of elements actually pulled")
}
