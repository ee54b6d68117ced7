package jqcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddValNullIsIdentity(t *testing.T) {
	v, err := addVal(Null(), Int(5))
	require.NoError(t, err)
	assert.Equal(t, Int(5), v)

	v, err = addVal(Int(5), Null())
	require.NoError(t, err)
	assert.Equal(t, Int(5), v)
}

func TestAddValStringsArraysObjects(t *testing.T) {
	v, err := addVal(Str("foo"), Str("bar"))
	require.NoError(t, err)
	assert.Equal(t, Str("foobar"), v)

	v, err = addVal(Arr([]Val{Int(1)}), Arr([]Val{Int(2)}))
	require.NoError(t, err)
	arr, _ := v.AsArr()
	assert.Equal(t, []Val{Int(1), Int(2)}, arr)

	v, err = addVal(
		Obj([]ObjEntry{{Key: "a", Val: Int(1)}}),
		Obj([]ObjEntry{{Key: "b", Val: Int(2)}}),
	)
	require.NoError(t, err)
	a, _ := v.Get("a")
	b, _ := v.Get("b")
	assert.Equal(t, Int(1), a)
	assert.Equal(t, Int(2), b)
}

func TestAddValMismatchedKindsErrors(t *testing.T) {
	_, err := addVal(Int(1), Str("x"))
	assert.Error(t, err)
}

func TestSubValRemovesArrayElements(t *testing.T) {
	v, err := subVal(Arr([]Val{Int(1), Int(2), Int(3)}), Arr([]Val{Int(2)}))
	require.NoError(t, err)
	arr, _ := v.AsArr()
	assert.Equal(t, []Val{Int(1), Int(3)}, arr)
}

func TestMulValRepeatsString(t *testing.T) {
	v, err := mulVal(Str("ab"), Int(3))
	require.NoError(t, err)
	s, _ := v.AsStr()
	assert.Equal(t, "ababab", s)

	v, err = mulVal(Str("ab"), Int(0))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestMulValDeepMergesObjects(t *testing.T) {
	a := Obj([]ObjEntry{{Key: "x", Val: Obj([]ObjEntry{{Key: "n", Val: Int(1)}})}})
	b := Obj([]ObjEntry{{Key: "x", Val: Obj([]ObjEntry{{Key: "m", Val: Int(2)}})}})
	v, err := mulVal(a, b)
	require.NoError(t, err)
	x, ok := v.Get("x")
	require.True(t, ok)
	n, _ := x.Get("n")
	m, _ := x.Get("m")
	assert.Equal(t, Int(1), n, "deep merge keeps untouched nested keys")
	assert.Equal(t, Int(2), m)
}

func TestDivValIntegerExactDivisionStaysInt(t *testing.T) {
	v, err := divVal(Int(10), Int(2))
	require.NoError(t, err)
	assert.Equal(t, Int(5), v)
}

func TestDivValInexactDivisionPromotesToFloat(t *testing.T) {
	v, err := divVal(Int(1), Int(3))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())
}

func TestDivValByZeroErrors(t *testing.T) {
	_, err := divVal(Int(1), Int(0))
	assert.Error(t, err)
}

func TestDivValStringsSplit(t *testing.T) {
	v, err := divVal(Str("a,b,c"), Str(","))
	require.NoError(t, err)
	arr, _ := v.AsArr()
	assert.Equal(t, []Val{Str("a"), Str("b"), Str("c")}, arr)
}

func TestModValByZeroErrors(t *testing.T) {
	_, err := modVal(Int(5), Int(0))
	assert.Error(t, err)
}

func TestModValRemainder(t *testing.T) {
	v, err := modVal(Int(7), Int(3))
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)
}

func TestOrdOpComparisons(t *testing.T) {
	assert.True(t, OpLt.Run(Int(1), Int(2)))
	assert.True(t, OpGe.Run(Int(2), Int(2)))
	assert.True(t, OpEq.Run(Str("a"), Str("a")))
	assert.True(t, OpNe.Run(Int(1), Str("1")))
}

func TestNegValidAndInvalid(t *testing.T) {
	v, err := Neg(Int(5))
	require.NoError(t, err)
	assert.Equal(t, Int(-5), v)

	_, err = Neg(Str("x"))
	assert.Error(t, err)
}
