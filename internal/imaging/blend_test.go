package imaging

import "testing"

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want string
	}{
		{BlendNormal, "Normal"},
		{BlendMultiply, "Multiply"},
		{BlendScreen, "Screen"},
		{BlendOverlay, "Overlay"},
		{BlendDarken, "Darken"},
		{BlendLighten, "Lighten"},
		{BlendMode(200), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("BlendMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseBlendModeRoundTrip(t *testing.T) {
	modes := []BlendMode{
		BlendNormal, BlendMultiply, BlendScreen,
		BlendOverlay, BlendDarken, BlendLighten,
	}
	for _, m := range modes {
		got, err := ParseBlendMode(m.String())
		if err != nil {
			t.Fatalf("ParseBlendMode(%q) error: %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseBlendMode(%q) = %v, want %v", m.String(), got, m)
		}
	}
}

func TestParseBlendModeUnknown(t *testing.T) {
	if _, err := ParseBlendMode("luminosity"); err == nil {
		t.Error("ParseBlendMode(\"luminosity\") succeeded, want error")
	}
}

func TestParseBlendModeEmptyIsNormal(t *testing.T) {
	m, err := ParseBlendMode("")
	if err != nil || m != BlendNormal {
		t.Errorf("ParseBlendMode(\"\") = (%v, %v), want (Normal, nil)", m, err)
	}
}

func TestBlendTransparentSourceKeepsDestination(t *testing.T) {
	r, g, b, a := blendPixel(255, 0, 0, 0, 10, 20, 30, 40, BlendNormal)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("transparent source changed destination: (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestBlendOpaqueNormalReplaces(t *testing.T) {
	r, g, b, a := blendPixel(1, 2, 3, 255, 10, 20, 30, 255, BlendNormal)
	if r != 1 || g != 2 || b != 3 || a != 255 {
		t.Errorf("opaque source-over = (%d,%d,%d,%d), want (1,2,3,255)", r, g, b, a)
	}
}

func TestBlendMultiplyDarkens(t *testing.T) {
	// 128 * 128 / 255 = 64
	r, _, _, _ := blendPixel(128, 128, 128, 255, 128, 128, 128, 255, BlendMultiply)
	if r != 64 {
		t.Errorf("multiply 128*128 = %d, want 64", r)
	}
}

func TestBlendScreenLightens(t *testing.T) {
	// 255 - (255-128)*(255-128)/255 = 255 - 63 = 192
	r, _, _, _ := blendPixel(128, 128, 128, 255, 128, 128, 128, 255, BlendScreen)
	if r != 192 {
		t.Errorf("screen 128,128 = %d, want 192", r)
	}
}

func TestBlendDarkenLighten(t *testing.T) {
	r, _, _, _ := blendPixel(100, 0, 0, 255, 200, 0, 0, 255, BlendDarken)
	if r != 100 {
		t.Errorf("darken(100, 200) = %d, want 100", r)
	}
	r, _, _, _ = blendPixel(100, 0, 0, 255, 200, 0, 0, 255, BlendLighten)
	if r != 200 {
		t.Errorf("lighten(100, 200) = %d, want 200", r)
	}
}

func TestBlendHalfAlphaNormal(t *testing.T) {
	// White at ~50% over opaque black: channels near 127, alpha stays opaque.
	r, g, b, a := blendPixel(255, 255, 255, 127, 0, 0, 0, 255, BlendNormal)
	if a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
	if r < 120 || r > 135 || g != r || b != r {
		t.Errorf("half-alpha white over black = (%d,%d,%d), want ~127 gray", r, g, b)
	}
}
