package mdl

// QuantizePosition compresses a world-space position onto the model's byte
// lattice, one axis at a time. An axis with zero extent maps to the midpoint
// 127 so flat or degenerate models stay centered. Positions outside the box
// clamp to the lattice edge, so any finite input yields a valid vertex.
func QuantizePosition(pos, min, max [3]float32) (uint8, uint8, uint8) {
	return quantizeAxis(pos[0], min[0], max[0]),
		quantizeAxis(pos[1], min[1], max[1]),
		quantizeAxis(pos[2], min[2], max[2])
}

func quantizeAxis(v, lo, hi float32) uint8 {
	span := float64(hi) - float64(lo)
	if span == 0 {
		return 127
	}
	// Truncation toward zero, not rounding.
	q := int(((float64(v) - float64(lo)) / span) * 255)
	if q < 0 {
		q = 0
	}
	if q > 255 {
		q = 255
	}
	return uint8(q)
}
