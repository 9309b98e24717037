// Package colorstats implements the color/statistics algorithms:
// illumination, saturation, contrast and the top-colors quantized
// histogram, plus a supplemental dominant-colors k-means algorithm.
// Grounded on the original's imgdb/algorithm.py formulas and the
// teacher's internal/indexer/color.go HSL helpers.
package colorstats

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/mccutchen/palettor"
)

// walkPixels walks every pixel once, in the exact x-outer/y-inner order
// the original traverses, to keep top-colors "first encounter" ordering
// identical for tie-broken cases.
func walkPixels(img image.Image, fn func(r, g, b uint8)) {
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			fn(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Illumination returns a 0..100 brightness score: a weighted average in
// which the HSV value channel counts twice and the mean RGB brightness
// once.
func Illumination(img image.Image) float64 {
	var vSum, brightSum float64
	var n float64
	walkPixels(img, func(r, g, b uint8) {
		maxC := maxByte(r, g, b)
		vSum += float64(maxC)
		brightSum += (float64(r) + float64(g) + float64(b)) / 3
		n++
	})
	if n == 0 {
		return 0
	}
	valuePct := vSum / n / 255 * 100
	brightnessPct := brightSum / n / 255 * 100
	return round2((valuePct + valuePct + brightnessPct) / 3)
}

// Saturation returns a 0..100 score: the mean HSV saturation channel.
func Saturation(img image.Image) float64 {
	var sSum, n float64
	walkPixels(img, func(r, g, b uint8) {
		maxC := maxByte(r, g, b)
		minC := minByte(r, g, b)
		var s float64
		if maxC != 0 {
			s = float64(maxC-minC) / float64(maxC) * 255
		}
		sSum += s
		n++
	})
	if n == 0 {
		return 0
	}
	return round2(sSum / n / 255 * 100)
}

// Contrast returns a 0..100 score: the range between the 5th and 95th
// luminance percentiles, normalized.
func Contrast(img image.Image) float64 {
	var lums []float64
	walkPixels(img, func(r, g, b uint8) {
		l := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		lums = append(lums, l)
	})
	if len(lums) == 0 {
		return 0
	}
	sort.Float64s(lums)
	p05 := percentile(lums, 5)
	p95 := percentile(lums, 95)
	return round2((p95 - p05) / 255 * 100)
}

// percentile implements numpy's default linear-interpolation percentile
// over an already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// TopColors quantizes every pixel to a grid of `channels` steps per
// channel, snaps near-white to pure white, and returns the buckets whose
// share is >= cutPercent, as "#RRGGBB=pct" ordered by first encounter.
func TopColors(img image.Image, channels int, cutPercent int) []string {
	if channels < 1 {
		channels = 1
	}
	split := int(math.Round(255.0 / float64(channels)))
	if split < 1 {
		split = 1
	}

	order := make([]string, 0)
	counts := make(map[string]int)
	total := 0

	walkPixels(img, func(r, g, b uint8) {
		hex := closestColor(r, g, b, split)
		if _, ok := counts[hex]; !ok {
			order = append(order, hex)
		}
		counts[hex]++
		total++
	})

	if total == 0 {
		return nil
	}
	out := make([]string, 0, len(order))
	for _, hex := range order {
		pct := math.Round(float64(counts[hex])/float64(total)*1000) / 10
		if pct >= float64(cutPercent) {
			out = append(out, fmt.Sprintf("%s=%s", hex, formatPct(pct)))
		}
	}
	return out
}

func formatPct(pct float64) string {
	s := fmt.Sprintf("%.1f", pct)
	return s
}

func closestColor(r, g, b uint8, split int) string {
	snap := func(c uint8) uint8 {
		v := int(math.Round(float64(c)/float64(split))) * split
		if v > 255 {
			v = 255
		}
		if v < 0 {
			v = 0
		}
		if v > 250 {
			v = 255
		}
		return uint8(v)
	}
	return fmt.Sprintf("#%02x%02x%02x", snap(r), snap(g), snap(b))
}

func maxByte(a, b, c uint8) uint8 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minByte(a, b, c uint8) uint8 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// DominantColors is the supplemental clustering algorithm (§4.2, §11):
// a k-means approximation distinct from the quantized TopColors
// histogram, reported as "#RRGGBB=pct" ordered by descending weight.
func DominantColors(img image.Image, numColors int) ([]string, error) {
	if numColors < 1 {
		numColors = 1
	}
	palette, err := palettor.Extract(100, numColors, img)
	if err != nil {
		return nil, fmt.Errorf("colorstats: dominant-colors: %w", err)
	}
	entries := palette.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		r, g, b, _ := e.Color.RGBA()
		hexs := fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
		out = append(out, fmt.Sprintf("%s=%s", hexs, formatPct(round2(e.Weight*100))))
	}
	return out, nil
}
