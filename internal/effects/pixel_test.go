package effects

import "testing"

func TestBlendByte(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint8
		t256    int
		want    uint8
	}{
		{"factor zero returns a", 10, 240, 0, 10},
		{"factor one returns b", 10, 240, 256, 240},
		{"midpoint rounds", 0, 255, 128, 128},
		{"equal inputs are fixed points", 77, 77, 100, 77},
		{"extremes at half", 0, 0, 128, 0},
		{"white stays white", 255, 255, 256, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blendByte(tt.a, tt.b, tt.t256); got != tt.want {
				t.Errorf("blendByte(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.t256, got, tt.want)
			}
		})
	}
}

func TestBlendByteIdentityForAllValues(t *testing.T) {
	for v := 0; v <= 255; v++ {
		a := uint8(v)
		if got := blendByte(a, 0, 0); got != a {
			t.Fatalf("blendByte(%d, 0, 0) = %d, want %d", a, got, a)
		}
		if got := blendByte(0, a, 256); got != a {
			t.Fatalf("blendByte(0, %d, 256) = %d, want %d", a, got, a)
		}
	}
}

func TestScale256(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 256},
		{0.5, 128},
		{0.25, 64},
		{3, 768},
	}
	for _, tt := range tests {
		if got := scale256(tt.in); got != tt.want {
			t.Errorf("scale256(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := luminance(0, 0, 0); got != 0 {
		t.Errorf("black luminance = %d, want 0", got)
	}
	if got := luminance(255, 255, 255); got != 255 {
		t.Errorf("white luminance = %d, want 255", got)
	}
	if got := luminance(128, 128, 128); got != 128 {
		t.Errorf("mid-gray luminance = %d, want 128", got)
	}
	// Green dominates the weighting.
	if luminance(0, 255, 0) <= luminance(255, 0, 0) {
		t.Error("green must weigh more than red")
	}
	if luminance(255, 0, 0) <= luminance(0, 0, 255) {
		t.Error("red must weigh more than blue")
	}
}

func TestClampU8(t *testing.T) {
	if got := clampU8(-5); got != 0 {
		t.Errorf("clampU8(-5) = %d, want 0", got)
	}
	if got := clampU8(300); got != 255 {
		t.Errorf("clampU8(300) = %d, want 255", got)
	}
	if got := clampU8(128); got != 128 {
		t.Errorf("clampU8(128) = %d, want 128", got)
	}
}
