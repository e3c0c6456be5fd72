package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements(), "scalar shape has one element")
	assert.Equal(t, 0, Shape{3, 0}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{2, 3}.Validate())
	assert.NoError(t, Shape{0}.Validate(), "zero-size dimensions are allowed")
	assert.Error(t, Shape{2, -1}.Validate())
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{5}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_EqualClone(t *testing.T) {
	s := Shape{3, 4}
	clone := s.Clone()
	assert.True(t, s.Equal(clone))

	clone[0] = 7
	assert.Equal(t, 3, s[0], "clone must not share backing storage")
	assert.False(t, s.Equal(clone))
	assert.False(t, s.Equal(Shape{3, 4, 1}))
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
	}{
		{"same shape", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{"expand column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true},
		{"expand row", Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true},
		{"rank promotion", Shape{5}, Shape{3, 5}, Shape{3, 5}, true},
		{"scalar", Shape{}, Shape{2, 3}, Shape{2, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}

	_, _, err := BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	assert.Error(t, err, "incompatible dimensions must not broadcast")
}
