package distfield

import "math"

// MedianFilter applies a 3x3 median filter to each channel and returns a
// new field. This is a post-processing step that can remove speckles.
func MedianFilter(m *MSDF) *MSDF {
	if m == nil {
		return nil
	}

	result := newMSDF(m.Width, m.Height)
	result.Bounds = m.Bounds
	result.Scale = m.Scale
	result.TranslateX = m.TranslateX
	result.TranslateY = m.TranslateY

	w, h := m.Width, m.Height
	for y := range h {
		for x := range w {
			rVals, gVals, bVals := collectNeighborhood(m, x, y, w, h)
			result.SetPixel(x, y, median9(rVals), median9(gVals), median9(bVals))
		}
	}
	return result
}

// collectNeighborhood collects 3x3 neighborhood pixel values with clamping.
func collectNeighborhood(m *MSDF, x, y, w, h int) (rVals, gVals, bVals [9]byte) {
	idx := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx := max(0, min(w-1, x+dx))
			ny := max(0, min(h-1, y+dy))

			r, g, b := m.GetPixel(nx, ny)
			rVals[idx] = r
			gVals[idx] = g
			bVals[idx] = b
			idx++
		}
	}
	return
}

// median9 finds the median of 9 byte values with a partial sorting network.
func median9(vals [9]byte) byte {
	swap := func(i, j int) {
		if vals[i] > vals[j] {
			vals[i], vals[j] = vals[j], vals[i]
		}
	}

	swap(0, 1)
	swap(3, 4)
	swap(6, 7)
	swap(1, 2)
	swap(4, 5)
	swap(7, 8)
	swap(0, 1)
	swap(3, 4)
	swap(6, 7)
	swap(0, 3)
	swap(3, 6)
	swap(0, 3)
	swap(1, 4)
	swap(4, 7)
	swap(1, 4)
	swap(2, 5)
	swap(5, 8)
	swap(2, 5)
	swap(1, 3)
	swap(5, 7)
	swap(2, 6)
	swap(4, 6)
	swap(2, 4)
	swap(2, 3)
	swap(5, 6)

	return vals[4]
}

// ErrorCorrection pulls every channel that strays more than threshold
// (a fraction of 255) from the pixel's median back to that distance.
func ErrorCorrection(m *MSDF, threshold float64) {
	if m == nil {
		return
	}
	limit := threshold * 255

	for y := range m.Height {
		for x := range m.Width {
			r, g, b := m.GetPixel(x, y)
			med := median3Byte(r, g, b)

			rErr := math.Abs(float64(r) - float64(med))
			gErr := math.Abs(float64(g) - float64(med))
			bErr := math.Abs(float64(b) - float64(med))
			if max(rErr, gErr, bErr) <= limit {
				continue
			}
			if rErr > limit {
				r = correctChannel(r, med, limit)
			}
			if gErr > limit {
				g = correctChannel(g, med, limit)
			}
			if bErr > limit {
				b = correctChannel(b, med, limit)
			}
			m.SetPixel(x, y, r, g, b)
		}
	}
}

// median3Byte returns the median of three byte values.
func median3Byte(a, b, c byte) byte {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

// correctChannel moves a channel value toward the median.
func correctChannel(val, med byte, limit float64) byte {
	if val > med {
		return byte(min(255, float64(med)+limit))
	}
	return byte(max(0, float64(med)-limit))
}
