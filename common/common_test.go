package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizePositive(t *testing.T) {
	assert.True(t, Size{Width: 1, Height: 1}.Positive())
	assert.False(t, Size{Width: 0, Height: 300}.Positive())
	assert.False(t, Size{Width: 300, Height: -1}.Positive())
	assert.Equal(t, "500x500", Size{Width: 500, Height: 500}.String())
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint16{}))

	b := SliceToBytes([]uint16{0x0102, 0x0304, 0x0506})
	assert.Len(t, b, 6)

	f := SliceToBytes([][3]float32{{1, 2, 3}, {4, 5, 6}})
	assert.Len(t, f, 24)
}

func TestPadTo4(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{2, 4},
		{4, 4},
		{6, 8},
		{18, 20},
	}
	for _, tt := range tests {
		got := PadTo4(make([]byte, tt.in))
		assert.Len(t, got, tt.want, "input length %d", tt.in)
	}

	padded := PadTo4([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 0, 0}, padded)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 7, Coalesce(7, 3))
}
