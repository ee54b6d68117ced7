package jqcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValTruthiness(t *testing.T) {
	assert.False(t, Null().AsBool())
	assert.False(t, Bool(false).AsBool())
	assert.True(t, Bool(true).AsBool())
	assert.True(t, Int(0).AsBool(), "zero is truthy in jq")
	assert.True(t, EmptyArr().AsBool())
}

func TestValLen(t *testing.T) {
	n, err := Str("héllo").Len()
	require.NoError(t, err)
	assert.Equal(t, Int(5), n, "length counts runes, not bytes")

	n, err = Int(-7).Len()
	require.NoError(t, err)
	assert.Equal(t, Int(7), n)

	_, err = Bool(true).Len()
	assert.Error(t, err, "length of a boolean is an error")
}

func TestValKeysSorted(t *testing.T) {
	obj := Obj([]ObjEntry{{Key: "b", Val: Int(1)}, {Key: "a", Val: Int(2)}})
	ks, err := obj.Keys()
	require.NoError(t, err)
	arr, _ := ks.AsArr()
	require.Len(t, arr, 2)
	assert.Equal(t, "a", arr[0].s)
	assert.Equal(t, "b", arr[1].s)
}

func TestValGetSet(t *testing.T) {
	obj := EmptyObj()
	obj = obj.Set("a", Int(1))
	obj = obj.Set("b", Int(2))
	obj = obj.Set("a", Int(9))

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(9), v)

	arr, _ := obj.AsObj()
	require.Len(t, arr, 2, "re-setting an existing key must not append a duplicate")
	assert.Equal(t, "a", arr[0].Key, "re-setting an existing key preserves its position")
}

func TestValIndexOutOfRange(t *testing.T) {
	arr := Arr([]Val{Int(1), Int(2), Int(3)})
	assert.Equal(t, Int(3), arr.Index(-1))
	assert.Equal(t, Null(), arr.Index(10))
	assert.Equal(t, Null(), arr.Index(-10))
}

func TestValSlice(t *testing.T) {
	arr := Arr([]Val{Int(0), Int(1), Int(2), Int(3), Int(4)})
	from := int64(1)
	until := int64(3)
	v, err := arr.Slice(&from, &until)
	require.NoError(t, err)
	got, _ := v.AsArr()
	assert.Equal(t, []Val{Int(1), Int(2)}, got)
}

func TestCompareTotalOrder(t *testing.T) {
	assert.Less(t, Compare(Null(), Bool(false)), 0)
	assert.Less(t, Compare(Bool(false), Bool(true)), 0)
	assert.Less(t, Compare(Int(1), Str("a")), 0)
	assert.Less(t, Compare(Str("a"), Arr(nil)), 0)
	assert.Less(t, Compare(Arr(nil), Obj(nil)), 0)
	assert.Equal(t, 0, Compare(Int(1), Float(1.0)), "numeric kinds unify under Compare")
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(Str("foobar"), Str("oob")))
	assert.False(t, Contains(Str("foobar"), Str("xyz")))

	big := Arr([]Val{Int(1), Int(2), Int(3)})
	assert.True(t, Contains(big, Arr([]Val{Int(2), Int(1)})))
	assert.False(t, Contains(big, Arr([]Val{Int(9)})))

	obj := Obj([]ObjEntry{{Key: "a", Val: Str("hello")}})
	assert.True(t, Contains(obj, Obj([]ObjEntry{{Key: "a", Val: Str("ell")}})))
}
