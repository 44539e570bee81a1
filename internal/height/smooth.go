package height

import (
	"math"

	"mapgen/internal/core"
)

// GaussianKernel returns a normalised 1D Gaussian of standard deviation
// sigma with radius ceil(4·sigma). Sigma <= 0 yields the identity kernel.
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	half := int(math.Ceil(4 * sigma))
	k := make([]float64, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range k {
		x := float64(i - half)
		k[i] = math.Exp(-x * x / twoSigmaSq)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// Reflect maps an out-of-range index into [0, n) by mirroring about the
// edges, repeating the edge sample (d c b a | a b c d | d c b a).
func Reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// Smooth blurs data with a separable Gaussian of standard deviation sigma.
func Smooth(data *core.ScalarGrid, sigma float64, exec core.Exec) *core.ScalarGrid {
	if sigma <= 0 {
		return data.Clone()
	}
	k := GaussianKernel(sigma)
	half := len(k) / 2
	w, h := data.W, data.H

	tmp := core.NewGrid[float64](w, h)
	exec.Rows(h, func(y int) {
		src, dst := data.Row(y), tmp.Row(y)
		for x := range dst {
			acc := 0.0
			for j, kv := range k {
				acc += kv * src[Reflect(x+j-half, w)]
			}
			dst[x] = acc
		}
	})

	out := core.NewGrid[float64](w, h)
	exec.Rows(h, func(y int) {
		dst := out.Row(y)
		for x := range dst {
			acc := 0.0
			for j, kv := range k {
				acc += kv * tmp.At(x, Reflect(y+j-half, h))
			}
			dst[x] = acc
		}
	})
	return out
}
