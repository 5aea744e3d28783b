package blend

// ToUnit converts an 8-bit channel to [0, 1].
func ToUnit(b byte) float32 {
	return float32(b) / 255
}

// ToByte converts a [0, 1] channel to 8 bits, rounding to nearest. Values
// outside the range saturate and NaN maps to 0.
func ToByte(f float32) byte {
	f = clamp01(f)
	return byte(f*255 + 0.5)
}

// Unpack converts four 8-bit channels to [0, 1].
func Unpack(p []byte) [4]float32 {
	return [4]float32{ToUnit(p[0]), ToUnit(p[1]), ToUnit(p[2]), ToUnit(p[3])}
}

// Pack writes c to p as four 8-bit channels.
func Pack(p []byte, c [4]float32) {
	p[0], p[1], p[2], p[3] = ToByte(c[0]), ToByte(c[1]), ToByte(c[2]), ToByte(c[3])
}

func clamp01(f float32) float32 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
