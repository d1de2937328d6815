package texture

import (
	"image"
	"image/color"
	"sort"
)

// Quantize reduces an image to an indexed form with at most maxColors
// palette entries using median-cut over the distinct pixel colors. Images
// already within the budget keep their exact colors.
func Quantize(img *image.NRGBA, maxColors int) *image.Paletted {
	b := img.Bounds()

	distinct := make(map[color.NRGBA]struct{})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			distinct[img.NRGBAAt(x, y)] = struct{}{}
		}
	}

	colors := make([]color.NRGBA, 0, len(distinct))
	for c := range distinct {
		colors = append(colors, c)
	}
	// Map iteration order is random; sort for a reproducible palette.
	sort.Slice(colors, func(i, j int) bool {
		a, c := colors[i], colors[j]
		if a.R != c.R {
			return a.R < c.R
		}
		if a.G != c.G {
			return a.G < c.G
		}
		if a.B != c.B {
			return a.B < c.B
		}
		return a.A < c.A
	})

	var palette color.Palette
	if len(colors) <= maxColors {
		for _, c := range colors {
			palette = append(palette, c)
		}
	} else {
		palette = medianCut(colors, maxColors)
	}

	dst := image.NewPaletted(b, palette)
	cache := make(map[color.NRGBA]uint8)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			idx, ok := cache[c]
			if !ok {
				idx = uint8(palette.Index(c))
				cache[c] = idx
			}
			dst.SetColorIndex(x, y, idx)
		}
	}
	return dst
}

// medianCut recursively splits the color set along its widest channel until
// maxColors boxes remain, then averages each box into a palette entry.
func medianCut(colors []color.NRGBA, maxColors int) color.Palette {
	boxes := [][]color.NRGBA{colors}
	for len(boxes) < maxColors {
		// Split the box with the widest channel range.
		bestBox := -1
		bestRange := 0
		bestChannel := 0
		for i, box := range boxes {
			if len(box) < 2 {
				continue
			}
			ch, span := widestChannel(box)
			if span > bestRange {
				bestBox = i
				bestRange = span
				bestChannel = ch
			}
		}
		if bestBox < 0 {
			break // nothing left to split
		}

		box := boxes[bestBox]
		ch := bestChannel
		sort.Slice(box, func(i, j int) bool {
			return channel(box[i], ch) < channel(box[j], ch)
		})
		mid := len(box) / 2
		boxes[bestBox] = box[:mid]
		boxes = append(boxes, box[mid:])
	}

	palette := make(color.Palette, 0, len(boxes))
	for _, box := range boxes {
		var r, g, b, a int
		for _, c := range box {
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			a += int(c.A)
		}
		n := len(box)
		palette = append(palette, color.NRGBA{
			R: uint8(r / n),
			G: uint8(g / n),
			B: uint8(b / n),
			A: uint8(a / n),
		})
	}
	return palette
}

func widestChannel(box []color.NRGBA) (channelIdx, span int) {
	var lo, hi [3]int
	for i := range lo {
		lo[i] = 256
		hi[i] = -1
	}
	for _, c := range box {
		for ch := 0; ch < 3; ch++ {
			v := channel(c, ch)
			if v < lo[ch] {
				lo[ch] = v
			}
			if v > hi[ch] {
				hi[ch] = v
			}
		}
	}
	for ch := 0; ch < 3; ch++ {
		if hi[ch]-lo[ch] > span {
			span = hi[ch] - lo[ch]
			channelIdx = ch
		}
	}
	return channelIdx, span
}

func channel(c color.NRGBA, ch int) int {
	switch ch {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}
