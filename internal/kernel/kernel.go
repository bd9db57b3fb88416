// Package kernel implements the Wendland quintic smoothing kernel in 2-D.
//
// All functions take the smoothing length h; the kernel has compact support
// of radius 2h (q = r/h <= 2). The normalization constant is 7/(4πh²).
//
//	w := kernel.Weight(r, h)
//	gx, gy := kernel.Gradient(dx, dy, h)
//	lap := kernel.Laplacian(r, h)
package kernel

import "math"

// Support is the kernel support radius in units of h.
const Support = 2.0

// Norm returns the 2-D normalization constant for smoothing length h.
func Norm(h float64) float64 {
	invH := 1.0 / h
	return 7.0 / 4.0 / math.Pi * (invH * invH)
}

func pow(x float64, n int) float64 {
	r := 1.0
	for i := 0; i < n; i++ {
		r *= x
	}
	return r
}

// Weight evaluates the kernel at separation r.
func Weight(r, h float64) float64 {
	q := r * (1.0 / h)
	if q > Support {
		return 0
	}
	return pow(1.0-0.5*q, 4) * (2.0*q + 1.0) * Norm(h)
}

// Gradient returns the gradient of the kernel with respect to the
// separation vector (dx, dy). The result is parallel to (dx, dy).
func Gradient(dx, dy, h float64) (float64, float64) {
	r := math.Sqrt(dx*dx + dy*dy)
	q := r * (1.0 / h)
	if q > Support {
		return 0, 0
	}
	g := Norm(h) * 5.0 * pow(q-2.0, 3) / (8.0 * h * h)
	return g * dx, g * dy
}

// Laplacian evaluates the kernel Laplacian used by the viscosity term.
//
// It is not clamped outside the support: callers must only pass in-support
// separations.
func Laplacian(r, h float64) float64 {
	q := r * (1.0 / h)
	return Norm(h) * 5.0 * (5.0*q*q*q - 24.0*q*q + 36.0*q - 16.0) / (8.0 * h * h)
}
