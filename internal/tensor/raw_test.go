package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64)
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, Float64, raw.DType())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 48, raw.ByteSize())
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, raw.AsFloat64(), "fresh tensors are zero-initialized")

	_, err = NewRaw(Shape{2, -1}, Float64)
	assert.Error(t, err)
}

func TestRawTensor_TypedViews(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3}, Shape{3})
	require.NoError(t, err)

	assert.Equal(t, Float32, raw.DType())
	assert.Equal(t, []float32{1, 2, 3}, raw.AsFloat32())
	assert.Panics(t, func() { raw.AsFloat64() }, "wrong dtype view must panic")
}

func TestFromSlice_SizeMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	assert.Error(t, err)
}

func TestFromScalar(t *testing.T) {
	raw := FromScalar(3.5)
	assert.Equal(t, Shape{}, raw.Shape())
	assert.Equal(t, 1, raw.NumElements())
	assert.Equal(t, 3.5, raw.Item())
}

func TestRawTensor_Clone(t *testing.T) {
	raw, err := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	require.NoError(t, err)

	clone := raw.Clone()
	clone.AsFloat64()[0] = 99

	assert.Equal(t, 1.0, raw.AsFloat64()[0], "clone must be a deep copy")
	assert.True(t, raw.Shape().Equal(clone.Shape()))
}

func TestRawTensor_AtSetAt(t *testing.T) {
	raw, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, 6.0, raw.At(1, 2))
	raw.SetAt(-1, 0, 1)
	assert.Equal(t, -1.0, raw.At(0, 1))

	assert.Panics(t, func() { raw.At(0) }, "wrong index count")
	assert.Panics(t, func() { raw.At(2, 0) }, "out of bounds")
}

func TestCreationHelpers(t *testing.T) {
	ones := Ones(Shape{2, 2}, Float64)
	assert.Equal(t, []float64{1, 1, 1, 1}, ones.AsFloat64())

	full := Full(Shape{3}, 2.5, Float32)
	assert.Equal(t, []float32{2.5, 2.5, 2.5}, full.AsFloat32())

	zl := ZerosLike(ones)
	assert.Equal(t, []float64{0, 0, 0, 0}, zl.AsFloat64())
	assert.True(t, zl.Shape().Equal(ones.Shape()))

	rn := Randn(Shape{100}, Float64)
	assert.Equal(t, 100, rn.NumElements())
}
