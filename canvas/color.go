package canvas

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b int) Color {
	return RGBA(r, g, b, 255)
}

// RGBA returns a color with every channel clamped to 0-255.
func RGBA(r, g, b, a int) Color {
	return Color{
		R: clampChannel(r),
		G: clampChannel(g),
		B: clampChannel(b),
		A: clampChannel(a),
	}
}

// InRange reports whether all channel inputs already sit in 0-255.
func InRange(vals ...int) bool {
	for _, v := range vals {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// lerp interpolates between two colors; t is clamped to [0, 1].
func lerp(c1, c2 Color, t float64) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return clampChannel(int(float64(a) + (float64(b)-float64(a))*t + 0.5))
	}
	return Color{R: mix(c1.R, c2.R), G: mix(c1.G, c2.G), B: mix(c1.B, c2.B), A: mix(c1.A, c2.A)}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
