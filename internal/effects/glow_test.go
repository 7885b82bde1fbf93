package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlowThresholdAboveMaxIsIdentity(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{"threshold": 255.0}))

	in := gradientFrame(t, 16, 12, 7)
	out, err := n.Apply(in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "no pixel is strictly brighter than 255")
}

func TestGlowIntensityZeroIsIdentity(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{"threshold": 0.0, "intensity": 0.0}))

	in := gradientFrame(t, 16, 12, 7)
	out, err := n.Apply(in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
}

func TestGlowMidGrayBelowThresholdIsIdentity(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{
		"threshold": 200.0,
		"radius":    3.0,
		"intensity": 0.5,
	}))

	in, err := NewFrame(64, 64)
	require.NoError(t, err)
	in.Fill(128, 128, 128)
	out, err := n.Apply(in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in), "mid-gray sits below the threshold, nothing glows")
}

func TestGlowBrightensAboveThreshold(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{
		"threshold": 100.0,
		"radius":    0.0,
		"intensity": 1.0,
	}))

	in, err := NewFrame(4, 4)
	require.NoError(t, err)
	in.Fill(200, 200, 200)
	out, err := n.Apply(in)
	require.NoError(t, err)

	// radius 0 leaves the bright image unblurred, so every pixel gains
	// its own value once: 200 + 200 = 400, saturated to 255.
	v, err := out.At(2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), v)
}

func TestGlowHaloSpreadsAtMostRadiusPerAxis(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{
		"threshold": 100.0,
		"radius":    2.0,
		"intensity": 3.0,
	}))

	in, err := NewFrame(11, 11)
	require.NoError(t, err)
	require.NoError(t, in.Set(5, 5, 0, 255))
	require.NoError(t, in.Set(5, 5, 1, 255))
	require.NoError(t, in.Set(5, 5, 2, 255))

	out, err := n.Apply(in)
	require.NoError(t, err)

	halo, err := out.At(4, 4, 0)
	require.NoError(t, err)
	assert.Greater(t, halo, uint8(0), "neighbors inside the radius glow")

	far, err := out.At(8, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), far, "separable box blur reaches radius per axis, no further")
}

func TestGlowSaturates(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{
		"threshold": 10.0,
		"radius":    1.0,
		"intensity": 3.0,
	}))

	in, err := NewFrame(8, 8)
	require.NoError(t, err)
	in.Fill(250, 250, 250)
	out, err := n.Apply(in)
	require.NoError(t, err)
	pix := out.Pix()
	for i := range pix {
		assert.Equal(t, uint8(255), pix[i], "additive glow must clamp, not wrap")
	}
}

func TestGlowPreservesResolutionAndInput(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{"threshold": 50.0}))
	in := gradientFrame(t, 13, 9, 77)
	want := in.Clone()

	out, err := n.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, 13, out.Width())
	assert.Equal(t, 9, out.Height())
	assert.True(t, in.Equal(want), "apply must not mutate the input")
}

func TestGlowBypass(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()
	require.NoError(t, n.SetParameters(map[string]interface{}{
		"threshold": 0.0,
		"intensity": 3.0,
		"bypass":    true,
	}))
	in, err := NewFrame(4, 4)
	require.NoError(t, err)
	in.Fill(200, 200, 200)
	out, err := n.Apply(in)
	require.NoError(t, err)
	assert.True(t, out.Equal(in))
}

func TestGlowSetParameters(t *testing.T) {
	t.Parallel()

	n := NewGlowNode()

	t.Run("defaults", func(t *testing.T) {
		params := n.GetParameters()
		assert.Equal(t, 200.0, params["threshold"])
		assert.Equal(t, 3.0, params["radius"])
		assert.Equal(t, 0.8, params["intensity"])
	})

	t.Run("rejects out of range", func(t *testing.T) {
		assert.Error(t, n.SetParameters(map[string]interface{}{"threshold": 256.0}))
		assert.Error(t, n.SetParameters(map[string]interface{}{"radius": -1.0}))
		assert.Error(t, n.SetParameters(map[string]interface{}{"intensity": 3.5}))
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		assert.Error(t, n.SetParameters(map[string]interface{}{"sigma": 1.0}))
	})
}

// naiveBoxBlur is the straightforward O(w*h*r) definition the sliding
// window implementation must agree with.
func naiveBoxBlur(src []uint8, w, h, radius int) []uint8 {
	win := 2*radius + 1
	tmp := make([]uint8, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < Channels; c++ {
				sum := 0
				for k := -radius; k <= radius; k++ {
					sum += int(src[(y*w+clampInt(x+k, 0, w-1))*Channels+c])
				}
				tmp[(y*w+x)*Channels+c] = uint8((sum + win/2) / win)
			}
		}
	}
	dst := make([]uint8, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < Channels; c++ {
				sum := 0
				for k := -radius; k <= radius; k++ {
					sum += int(tmp[(clampInt(y+k, 0, h-1)*w+x)*Channels+c])
				}
				dst[(y*w+x)*Channels+c] = uint8((sum + win/2) / win)
			}
		}
	}
	return dst
}

func TestBoxBlurMatchesNaiveDefinition(t *testing.T) {
	t.Parallel()

	const w, h = 9, 7
	src := make([]uint8, w*h*Channels)
	for i := range src {
		src[i] = uint8((i*37 + 11) % 256)
	}

	for _, radius := range []int{0, 1, 2, 4} {
		got := boxBlur(src, w, h, radius)
		want := naiveBoxBlur(src, w, h, radius)
		assert.Equal(t, want, got, "radius %d", radius)
	}
}

func TestBoxBlurUniformFieldIsFixedPoint(t *testing.T) {
	t.Parallel()

	const w, h = 6, 5
	src := make([]uint8, w*h*Channels)
	for i := range src {
		src[i] = 180
	}
	out := boxBlur(src, w, h, 3)
	for i := range out {
		assert.Equal(t, uint8(180), out[i], "edge clamp must keep a uniform field uniform")
	}
}
