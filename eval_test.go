package jqcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAll(t *testing.T, f *Filter, val Val) []ValR {
	t.Helper()
	e := NewEvaluator()
	return CollectR(e.Run(f, NewCtx(), val))
}

func okVals(t *testing.T, rs []ValR) []Val {
	t.Helper()
	out := make([]Val, len(rs))
	for i, r := range rs {
		require.False(t, r.IsErr(), "unexpected error at index %d: %v", i, r.Err)
		out[i] = r.Val
	}
	return out
}

func TestRunIdAndLiterals(t *testing.T) {
	got := okVals(t, runAll(t, Id(), Int(42)))
	assert.Equal(t, []Val{Int(42)}, got)

	got = okVals(t, runAll(t, IntLit(7), Null()))
	assert.Equal(t, []Val{Int(7)}, got)
}

func TestRunComma(t *testing.T) {
	f := CommaF(IntLit(1), IntLit(2))
	got := okVals(t, runAll(t, f, Null()))
	assert.Equal(t, []Val{Int(1), Int(2)}, got)
}

func TestRunPipeNoBinding(t *testing.T) {
	arr := Arr([]Val{Int(1), Int(2), Int(3)})
	dotDot := PathF(Id(), Path{{Kind: PartIter}})
	double := MathF(Id(), OpMul, IntLit(2))
	f := PipeF(dotDot, false, double)
	got := okVals(t, runAll(t, f, arr))
	assert.Equal(t, []Val{Int(2), Int(4), Int(6)}, got)
}

func TestRunPipeBinding(t *testing.T) {
	// (1,2) as $x | $x + 10
	bound := PipeF(CommaF(IntLit(1), IntLit(2)), true, MathF(VarF(0), OpAdd, IntLit(10)))
	got := okVals(t, runAll(t, bound, Null()))
	assert.Equal(t, []Val{Int(11), Int(12)}, got)
}

func TestRunAltFallsBackOnEmpty(t *testing.T) {
	f := AltF(EmptyF(), IntLit(9))
	got := okVals(t, runAll(t, f, Null()))
	assert.Equal(t, []Val{Int(9)}, got)
}

func TestRunAltFallsBackOnFalsy(t *testing.T) {
	f := AltF(Id(), IntLit(9))
	got := okVals(t, runAll(t, f, Bool(false)))
	assert.Equal(t, []Val{Int(9)}, got)
}

func TestRunAltKeepsTruthy(t *testing.T) {
	f := AltF(Id(), IntLit(9))
	got := okVals(t, runAll(t, f, Int(5)))
	assert.Equal(t, []Val{Int(5)}, got)
}

func TestRunIfThenElse(t *testing.T) {
	f := IfThenElseF([]Pair{{K: OrdF(Id(), OpGt, IntLit(0)), V: StrLit("pos")}}, StrLit("nonpos"))
	got := okVals(t, runAll(t, f, Int(5)))
	assert.Equal(t, []Val{Str("pos")}, got)
	got = okVals(t, runAll(t, f, Int(-5)))
	assert.Equal(t, []Val{Str("nonpos")}, got)
}

func TestRunTrySwallowsErrors(t *testing.T) {
	f := TryF(MathF(Id(), OpAdd, StrLit("x")))
	got := runAll(t, f, Int(1))
	assert.Empty(t, got)
}

func TestRunMathCartesianCardinality(t *testing.T) {
	l := CommaF(IntLit(1), IntLit(2))
	r := CommaF(IntLit(10), CommaF(IntLit(20), IntLit(30)))
	f := MathF(l, OpAdd, r)
	got := runAll(t, f, Null())
	assert.Len(t, got, 6, "cartesian product of a 2-output left and 3-output right is exactly 6")
}

func TestRunLogicShortCircuitsOr(t *testing.T) {
	// true or <error> should short circuit and never evaluate the right side.
	f := LogicF(OrdF(IntLit(0), OpEq, IntLit(0)), true, ErrorF())
	got := okVals(t, runAll(t, f, Null()))
	assert.Equal(t, []Val{Bool(true)}, got)
}

func TestRunReduceSum(t *testing.T) {
	arr := Arr([]Val{Int(1), Int(2), Int(3), Int(4)})
	dotDot := PathF(Id(), Path{{Kind: PartIter}})
	f := ReduceF(dotDot, NullLit(), MathF(Id(), OpAdd, VarF(0)))
	got := okVals(t, runAll(t, f, arr))
	require.Len(t, got, 1)
	assert.Equal(t, Int(10), got[0])
}

func TestRunSortBy(t *testing.T) {
	arr := Arr([]Val{
		Obj([]ObjEntry{{Key: "n", Val: Int(3)}}),
		Obj([]ObjEntry{{Key: "n", Val: Int(1)}}),
		Obj([]ObjEntry{{Key: "n", Val: Int(2)}}),
	})
	keyF := PathF(Id(), Path{{Kind: PartIndex, Index: StrLit("n")}})
	f := SortByF(keyF)
	got := okVals(t, runAll(t, f, arr))
	require.Len(t, got, 1)
	sorted, _ := got[0].AsArr()
	require.Len(t, sorted, 3)
	n0, _ := sorted[0].Get("n")
	n1, _ := sorted[1].Get("n")
	n2, _ := sorted[2].Get("n")
	assert.Equal(t, []Val{Int(1), Int(2), Int(3)}, []Val{n0, n1, n2})
}

func TestRunRecurse(t *testing.T) {
	val := Arr([]Val{Int(1), Arr([]Val{Int(2), Int(3)})})
	f := RecurseF(RecurseDot())
	got := okVals(t, runAll(t, f, val))
	assert.Equal(t, []Val{
		val,
		Int(1),
		Arr([]Val{Int(2), Int(3)}),
		Int(2),
		Int(3),
	}, got)
}

func TestRunLimitAndFirst(t *testing.T) {
	dotDot := PathF(Id(), Path{{Kind: PartIter}})
	arr := Arr([]Val{Int(1), Int(2), Int(3), Int(4), Int(5)})

	got := okVals(t, runAll(t, LimitF(IntLit(2), dotDot), arr))
	assert.Equal(t, []Val{Int(1), Int(2)}, got)

	got = okVals(t, runAll(t, FirstF(dotDot), arr))
	assert.Equal(t, []Val{Int(1)}, got)
}

func TestRunRange(t *testing.T) {
	f := RangeF(IntLit(0), IntLit(4))
	got := okVals(t, runAll(t, f, Null()))
	assert.Equal(t, []Val{Int(0), Int(1), Int(2), Int(3)}, got)
}

func TestRunHasAndContains(t *testing.T) {
	obj := Obj([]ObjEntry{{Key: "a", Val: Int(1)}})
	got := okVals(t, runAll(t, HasF(StrLit("a")), obj))
	assert.Equal(t, []Val{Bool(true)}, got)

	got = okVals(t, runAll(t, HasF(StrLit("b")), obj))
	assert.Equal(t, []Val{Bool(false)}, got)

	got = okVals(t, runAll(t, ContainsF(StrLit("ell")), Str("hello")))
	assert.Equal(t, []Val{Bool(true)}, got)
}

func TestRunSplit(t *testing.T) {
	got := okVals(t, runAll(t, SplitF(StrLit(",")), Str("a,b,c")))
	require.Len(t, got, 1)
	parts, _ := got[0].AsArr()
	assert.Equal(t, []Val{Str("a"), Str("b"), Str("c")}, parts)
}

func TestRunLastOverFiniteStream(t *testing.T) {
	dotDot := PathF(Id(), Path{{Kind: PartIter}})
	arr := Arr([]Val{Int(1), Int(2), Int(3)})
	got := okVals(t, runAll(t, LastF(dotDot), arr))
	assert.Equal(t, []Val{Int(3)}, got)
}

func TestRunArrayCollectsErrors(t *testing.T) {
	f := ArrayF(MathF(Id(), OpAdd, StrLit("x")))
	rs := runAll(t, f, Int(1))
	require.Len(t, rs, 1)
	assert.True(t, rs[0].IsErr())
}

func TestRunPipeWrappedTypeErrorSatisfiesErrorsIs(t *testing.T) {
	// . | -. , run against a string: negation raises a type error, and it
	// must still be recognizable as one after flowing through a Pipe.
	f := PipeF(Id(), false, NegF(Id()))
	got := runAll(t, f, Str("x"))
	require.Len(t, got, 1)
	require.True(t, got[0].IsErr())
	assert.True(t, errors.Is(got[0].Err, ErrType))
}

func TestRunObjectConstruction(t *testing.T) {
	pairs := []Pair{{K: StrLit("k"), V: IntLit(1)}}
	f := ObjectF(pairs)
	got := okVals(t, runAll(t, f, Null()))
	require.Len(t, got, 1)
	v, ok := got[0].Get("k")
	require.True(t, ok)
	assert.Equal(t, Int(1), v)
}
