package effects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	t.Parallel()

	t.Run("valid dimensions", func(t *testing.T) {
		f, err := NewFrame(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, f.Width())
		assert.Equal(t, 3, f.Height())
		assert.Equal(t, 3, f.Channels())
		assert.Len(t, f.Pix(), 4*3*3)
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 3}, {3, -1}, {0, 0}} {
			_, err := NewFrame(dims[0], dims[1])
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr, "dimensions %v", dims)
		}
	})
}

func TestNewFrameFromPix(t *testing.T) {
	t.Parallel()

	pix := make([]uint8, 2*2*3)
	pix[0] = 42
	f, err := NewFrameFromPix(2, 2, pix)
	require.NoError(t, err)
	v, err := f.At(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(42), v)

	_, err = NewFrameFromPix(2, 2, make([]uint8, 5))
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestFrameBounds(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(4, 3)
	require.NoError(t, err)

	cases := []struct {
		name    string
		x, y, c int
	}{
		{"negative x", -1, 0, 0},
		{"x past width", 4, 0, 0},
		{"negative y", 0, -1, 0},
		{"y past height", 0, 3, 0},
		{"negative channel", 0, 0, -1},
		{"channel past range", 0, 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.At(tc.x, tc.y, tc.c)
			var boundsErr *BoundsError
			require.ErrorAs(t, err, &boundsErr)
			assert.Equal(t, tc.x, boundsErr.X)
			assert.Equal(t, tc.y, boundsErr.Y)
			assert.Equal(t, tc.c, boundsErr.C)
			assert.Equal(t, 4, boundsErr.Width)
			assert.Equal(t, 3, boundsErr.Height)

			err = f.Set(tc.x, tc.y, tc.c, 1)
			assert.ErrorAs(t, err, &boundsErr)
		})
	}

	t.Run("in-bounds round trip", func(t *testing.T) {
		require.NoError(t, f.Set(3, 2, 2, 99))
		v, err := f.At(3, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, uint8(99), v)
	})
}

func TestFrameClone(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(2, 2)
	require.NoError(t, err)
	f.Fill(10, 20, 30)

	clone := f.Clone()
	assert.True(t, f.Equal(clone))

	require.NoError(t, clone.Set(0, 0, 0, 200))
	v, err := f.At(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), v, "clone write must not reach the original")
	assert.False(t, f.Equal(clone))
}

func TestFrameFill(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(3, 2)
	require.NoError(t, err)
	f.Fill(1, 2, 3)
	pix := f.Pix()
	for i := 0; i < len(pix); i += Channels {
		assert.Equal(t, uint8(1), pix[i])
		assert.Equal(t, uint8(2), pix[i+1])
		assert.Equal(t, uint8(3), pix[i+2])
	}
}

func TestFrameSameSize(t *testing.T) {
	t.Parallel()

	a, _ := NewFrame(4, 3)
	b, _ := NewFrame(4, 3)
	c, _ := NewFrame(3, 4)
	assert.True(t, a.SameSize(b))
	assert.False(t, a.SameSize(c))
	assert.False(t, a.SameSize(nil))
}

func TestFrameToRGBA(t *testing.T) {
	t.Parallel()

	f, err := NewFrame(2, 2)
	require.NoError(t, err)
	require.NoError(t, f.Set(1, 0, 0, 200))
	require.NoError(t, f.Set(1, 0, 1, 100))
	require.NoError(t, f.Set(1, 0, 2, 50))

	img := f.ToRGBA()
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	r, g, b, a := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(100), g>>8)
	assert.Equal(t, uint32(50), b>>8)
	assert.Equal(t, uint32(255), a>>8)
}

func TestBoundsErrorMessage(t *testing.T) {
	t.Parallel()

	f, _ := NewFrame(4, 3)
	_, err := f.At(9, 1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(9, 1)")
	assert.Contains(t, err.Error(), "4x3")
	var cfgErr *ConfigError
	assert.False(t, errors.As(err, &cfgErr), "bounds and config errors must stay distinct")
}
