package jsonfmt

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

func TestEncodeArray(t *testing.T) {
	s, err := NewSerializer(newTestRegistry())
	require.NoError(t, err)

	out, err := EncodeArray[*testProduct](s, nil)
	assert.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = EncodeArray(s, []*testProduct{})
	assert.NoError(t, err)
	assert.Equal(t, "[]", out)

	a := &testProduct{Title: "a", Price: &testPrice{Buy: ptr[uint32](1)}}
	b := &testProduct{Title: "b", Description: ptr("d")}
	encA, err := s.Encode(a)
	require.NoError(t, err)
	encB, err := s.Encode(b)
	require.NoError(t, err)

	out, err = EncodeArray(s, []*testProduct{a, b})
	assert.NoError(t, err)
	assert.Equal(t, "["+encA+","+encB+"]", out)
	assert.Equal(t, WrapArray([]string{encA, encB}), out)
}

func TestEncodeArrayProjected(t *testing.T) {
	s, err := NewSerializer(newTestRegistry())
	require.NoError(t, err)

	values := []*testProduct{
		{Title: "a", Description: ptr("x")},
		{Title: "b"},
		{Description: ptr("y")},
	}
	out, err := EncodeArrayProjected(s, values, Keep("description"))
	assert.NoError(t, err)
	assert.Equal(t, `[{"description":"x"},{},{"description":"y"}]`, out)
	assert.Equal(t, "a", values[0].Title)

	out, err = EncodeArrayProjected(s, values, nil)
	assert.NoError(t, err)
	assert.Equal(t, `[{"title":"a","description":"x"},{"title":"b"},{"title":"","description":"y"}]`, out)
}

func TestEncodeArrayRejectsAll(t *testing.T) {
	s, err := NewSerializer(newTestRegistry())
	require.NoError(t, err)

	out, err := EncodeArray(s, []Record{&testPrice{}, &testSecret{Key: "k"}})
	assert.ErrorIs(t, err, merr.ErrTypeNotSupported)
	assert.Contains(t, err.Error(), "element 1")
	assert.Empty(t, out)

	_, err = EncodeArray(s, []*testProduct{{Title: "a"}, nil})
	assert.ErrorIs(t, err, merr.ErrParameterMissing)

	// 元素内部出错时同样不返回任何输出。
	out, err = EncodeArray(s, []Record{&testPrice{}, &testBroken{}})
	assert.ErrorIs(t, err, merr.ErrEncodingFailed)
	assert.Empty(t, out)
}

func TestEncodeArrayReader(t *testing.T) {
	s, err := NewSerializer(newTestRegistry())
	require.NoError(t, err)

	r, err := EncodeArrayReader(s, []*testPrice{{Buy: ptr[uint32](1)}, {Rent: ptr[uint32](2)}})
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, `[{"buy":1},{"rent":2}]`, string(data))

	r, err = EncodeArrayProjectedReader(s, []*testPrice{{Buy: ptr[uint32](1), Rent: ptr[uint32](2)}}, Keep("rent"))
	require.NoError(t, err)
	data, err = io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, `[{"rent":2}]`, string(data))

	_, err = EncodeArrayReader(s, []*testSecret{{}})
	assert.ErrorIs(t, err, merr.ErrTypeNotSupported)
}

func TestScalarArrays(t *testing.T) {
	assert.Equal(t, "[]", EncodeUints[uint32](nil))
	assert.Equal(t, "[1,2,3]", EncodeUints([]uint32{1, 2, 3}))
	assert.Equal(t, "[18446744073709551615]", EncodeUints([]uint64{18446744073709551615}))
	assert.Equal(t, "[]", EncodeInts([]int{}))
	assert.Equal(t, "[-1,0,2]", EncodeInts([]int{-1, 0, 2}))
	assert.Equal(t, "[-9223372036854775808]", EncodeInts([]int64{-9223372036854775808}))

	out, err := EncodeStrings(nil)
	assert.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = EncodeStrings([]string{"a", `b"c`, "d\ne"})
	assert.NoError(t, err)
	assert.Equal(t, `["a","b\"c","d\ne"]`, out)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil, ","))
	assert.Equal(t, "a", Join([]string{"a"}, ","))
	assert.Equal(t, "a, b", Join([]string{"a", "b"}, ", "))
	assert.Equal(t, "[]", WrapArray(nil))
	assert.Equal(t, "[1,2]", WrapArray([]string{"1", "2"}))
}

func TestToReader(t *testing.T) {
	r := ToReader(`{"title":"中文"}`)
	assert.Equal(t, int64(len(`{"title":"中文"}`)), r.Size())

	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, `{"title":"中文"}`, string(data))

	pos, err := r.Seek(0, io.SeekStart)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pos)
	data, err = io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, `{"title":"中文"}`, string(data))
}
