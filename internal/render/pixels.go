package render

import "image/color"

// Palette is an ordered color ramp indexed by a scalar in [0, 1].
type Palette []color.RGBA

// HeatPalette returns the ramp used by the surface viewer: dark blue through
// purple to red.
func HeatPalette() Palette {
	const stops = 32
	p := make(Palette, stops)
	for i := range p {
		t := float64(i) / float64(stops-1)
		p[i] = color.RGBA{
			R: uint8(20 + 235*t),
			G: uint8(24 * (1 - t)),
			B: uint8(96 * (1 - t)),
			A: 255,
		}
	}
	return p
}

// FillHeatRGBA converts scalar values into RGBA pixels in buf using the
// palette. Values are clamped to [0, 1] before indexing; buf must hold
// 4*len(values) bytes. An empty palette clears the pixels to transparent
// black.
func FillHeatRGBA(buf []byte, values []float64, palette Palette) {
	if len(palette) == 0 {
		for i := range values {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		idx := int(v * float64(last))
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Rescale maps values onto [0, 1] by dividing by the maximum when it exceeds
// 1, leaving already-bounded data untouched. The input is not modified.
func Rescale(values []float64) []float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	if max <= 1 {
		copy(out, values)
		return out
	}
	for i, v := range values {
		out[i] = v / max
	}
	return out
}
