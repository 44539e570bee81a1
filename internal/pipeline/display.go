package pipeline

import "image/color"

var (
	waterColor = color.NRGBA{R: 45, G: 95, B: 160, A: 255}

	// Biome corners, indexed by temperature then precipitation.
	coldDry = color.NRGBA{R: 190, G: 190, B: 175, A: 255}
	coldWet = color.NRGBA{R: 120, G: 150, B: 135, A: 255}
	hotDry  = color.NRGBA{R: 215, G: 190, B: 120, A: 255}
	hotWet  = color.NRGBA{R: 55, G: 125, B: 55, A: 255}
)

// WaterBiome returns the biome index used for water pixels.
func WaterBiome(bins int) int { return bins * bins }

// BiomeIndex combines a temperature and a precipitation band.
func BiomeIndex(temperature, precipitation, bins int) int {
	return temperature*bins + precipitation
}

// BiomePalette returns bins×bins land colors indexed by BiomeIndex followed
// by the water color. Colors are interpolated between the four corner
// biomes.
func BiomePalette(bins int) []color.RGBA {
	palette := make([]color.RGBA, bins*bins+1)
	for t := 0; t < bins; t++ {
		for p := 0; p < bins; p++ {
			palette[BiomeIndex(t, p, bins)] = toRGBA(biomeColor(t, p, bins))
		}
	}
	palette[WaterBiome(bins)] = toRGBA(waterColor)
	return palette
}

func biomeColor(t, p, bins int) color.NRGBA {
	ft, fp := fraction(t, bins), fraction(p, bins)
	cold := blendColors(coldDry, coldWet, fp)
	hot := blendColors(hotDry, hotWet, fp)
	return blendColors(cold, hot, ft)
}

func fraction(i, bins int) float64 {
	if bins <= 1 {
		return 0.5
	}
	return float64(i) / float64(bins-1)
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
