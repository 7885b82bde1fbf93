// Fixed-point pixel arithmetic shared by the effect nodes
package effects

import "math"

// scale256 converts a fractional factor to fixed point with 8 fractional
// bits, so blends stay bit-identical across platforms.
func scale256(t float64) int {
	return int(math.Round(t * 256))
}

// blendByte interpolates a toward b by the fixed-point factor ti in [0, 256].
// ti=0 yields exactly a, ti=256 yields exactly b.
func blendByte(a, b uint8, ti int) uint8 {
	return uint8((int(a)*(256-ti) + int(b)*ti + 128) >> 8)
}

// luminance computes integer Rec. 601 luma; the weights sum to 256.
func luminance(r, g, b uint8) int {
	return (77*int(r) + 150*int(g) + 29*int(b)) >> 8
}

func clampU8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
