// Package hashpix implements the hashing primitives: cryptographic
// digests over decoded pixel bytes and the perceptual hash family
// (average, difference-horizontal, difference-vertical, combined,
// row-column, blur-hash), each serialized to a fixed-width base-32
// string. Grounded on the original's imgdb/vhash.py bit-packing
// contracts, adapted from numpy boolean grids to Go bit slices.
package hashpix

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
	"github.com/nfnt/resize"
)

// HashSize is the square grid dimension used by every bit-vector
// perceptual hash; the spec calls for "8x8 to 9x9 depending on variant".
const HashSize = 8

// toGray resizes img to w×h and returns row-major luminance values,
// matching PIL's convert("L") + resize(ANTIALIAS) pipeline.
func toGray(img image.Image, w, h int) [][]uint8 {
	small := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
	bounds := small.Bounds()
	grid := make([][]uint8, h)
	for y := 0; y < h; y++ {
		row := make([]uint8, w)
		for x := 0; x < w; x++ {
			gr, gg, gb, _ := small.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (299*gr + 587*gg + 114*gb) / 1000
			row[x] = uint8(lum >> 8)
		}
		grid[y] = row
	}
	return grid
}

// AverageHash: bit = pixel > mean over an 8x8 grayscale grid.
func AverageHash(img image.Image) string {
	grid := toGray(img, HashSize, HashSize)
	var sum int
	for _, row := range grid {
		for _, px := range row {
			sum += int(px)
		}
	}
	mean := float64(sum) / float64(HashSize*HashSize)
	bits := make([]bool, 0, HashSize*HashSize)
	for _, row := range grid {
		for _, px := range row {
			bits = append(bits, float64(px) > mean)
		}
	}
	return serializeBits(bits)
}

// DiffHashHorizontal: each row compares adjacent columns over a
// (size+1)×size grayscale grid.
func DiffHashHorizontal(img image.Image) string {
	grid := toGray(img, HashSize+1, HashSize)
	bits := make([]bool, 0, HashSize*HashSize)
	for _, row := range grid {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, row[x+1] > row[x])
		}
	}
	return serializeBits(bits)
}

// DiffHashVertical: symmetric over rows, on a size×(size+1) grid.
func DiffHashVertical(img image.Image) string {
	grid := toGray(img, HashSize, HashSize+1)
	bits := make([]bool, 0, HashSize*HashSize)
	for y := 0; y < HashSize; y++ {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, grid[y+1][x] > grid[y][x])
		}
	}
	return serializeBits(bits)
}

// CombinedHash concatenates average, horizontal-diff and vertical-diff
// bit vectors before serializing, so a single hash reflects all three
// perspectives.
func CombinedHash(img image.Image) string {
	grid := toGray(img, HashSize, HashSize)
	var sum int
	for _, row := range grid {
		for _, px := range row {
			sum += int(px)
		}
	}
	mean := float64(sum) / float64(HashSize*HashSize)

	gridH := toGray(img, HashSize+1, HashSize)
	gridV := toGray(img, HashSize, HashSize+1)

	bits := make([]bool, 0, 3*HashSize*HashSize)
	for _, row := range grid {
		for _, px := range row {
			bits = append(bits, float64(px) > mean)
		}
	}
	for _, row := range gridH {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, row[x+1] > row[x])
		}
	}
	for y := 0; y < HashSize; y++ {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, gridV[y+1][x] > gridV[y][x])
		}
	}
	return serializeBits(bits)
}

// RowColumnHash packs two size×size bit planes (row-wise and
// column-wise neighbor comparisons) into a single (size+1)×(size+1)
// sourced bit vector, preserving the original's
// "row_hash << (size*size) | col_hash" packing exactly, since row bits
// are emitted before column bits into the same big-endian bit vector.
func RowColumnHash(img image.Image) string {
	grid := toGray(img, HashSize+1, HashSize+1)
	bits := make([]bool, 0, 2*HashSize*HashSize)
	for y := 0; y < HashSize; y++ {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, grid[y][x] < grid[y][x+1])
		}
	}
	for y := 0; y < HashSize; y++ {
		for x := 0; x < HashSize; x++ {
			bits = append(bits, grid[y][x] < grid[y+1][x])
		}
	}
	return serializeBits(bits)
}

// BlurHash computes a standard BlurHash encoding over a 256×256 thumbnail
// using a 4x4 component grid, the default the spec names.
func BlurHash(img image.Image) (string, error) {
	s, err := blurhash.Encode(4, 4, img)
	if err != nil {
		return "", fmt.Errorf("hashpix: blurhash encode: %w", err)
	}
	return s, nil
}

// Compute runs the named visual hash algorithm against img (which the
// caller has already resized to the 64x64 / 256x256 contract from §4.3
// step 8) and returns its serialized string.
func Compute(algo string, img image.Image) (string, error) {
	switch algo {
	case "ahash":
		return AverageHash(img), nil
	case "dhash":
		return DiffHashHorizontal(img), nil
	case "dhash-vert":
		return DiffHashVertical(img), nil
	case "chash":
		return CombinedHash(img), nil
	case "rchash":
		return RowColumnHash(img), nil
	case "blurhash":
		return BlurHash(img)
	default:
		return "", fmt.Errorf("hashpix: unknown visual hash %q", algo)
	}
}
