package shading

import "mapgen/internal/core"

var (
	// centralDifference yields (f[i+1] - f[i-1]) / 2 under convolution.
	centralDifference = Kernel{{0.5, 0, -0.5}}

	sobelX = Kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
)

// Gradient returns central-difference derivatives along columns (gx) and
// rows (gy).
func Gradient(data *core.ScalarGrid, exec core.Exec) (gx, gy *core.ScalarGrid) {
	gx = Convolve(data, centralDifference, exec)
	gy = Convolve(data, centralDifference.Transpose(), exec)
	return gx, gy
}

// Sobel returns 3×3 Sobel derivatives along columns (gx) and rows (gy).
// Under convolution the kernel is flipped, so gx grows towards lower x.
func Sobel(data *core.ScalarGrid, exec core.Exec) (gx, gy *core.ScalarGrid) {
	gx = Convolve(data, sobelX, exec)
	gy = Convolve(data, sobelX.Transpose(), exec)
	return gx, gy
}
