package view

// Mat3 is a row-major 3x3 affine transform over homogeneous 2D points.
// It is the exchange format the renderer collaborator consumes each frame.
type Mat3 [9]float64

// Identity returns the identity transform.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Apply transforms the point (x, y).
func (m Mat3) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = m[r*3]*n[c] + m[r*3+1]*n[3+c] + m[r*3+2]*n[6+c]
		}
	}
	return out
}
