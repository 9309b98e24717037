package hashpix

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// SimilarityBand classifies a Hamming distance between two perceptual
// hashes, adapted from the teacher's internal/indexer/phash.go threshold
// table.
type SimilarityBand int

const (
	BandIdentical SimilarityBand = iota
	BandVerySimilar
	BandSimilar
	BandSomewhatSimilar
	BandDifferent
)

func (b SimilarityBand) String() string {
	switch b {
	case BandIdentical:
		return "identical"
	case BandVerySimilar:
		return "very-similar"
	case BandSimilar:
		return "similar"
	case BandSomewhatSimilar:
		return "somewhat-similar"
	default:
		return "different"
	}
}

// ClassifyDistance maps a Hamming distance to a similarity band using
// the same bands the teacher documents: 0-5 identical, 6-10 very
// similar, 11-15 similar (burst), 16-20 somewhat similar, 21+ different.
func ClassifyDistance(distance int) SimilarityBand {
	switch {
	case distance <= 5:
		return BandIdentical
	case distance <= 10:
		return BandVerySimilar
	case distance <= 15:
		return BandSimilar
	case distance <= 20:
		return BandSomewhatSimilar
	default:
		return BandDifferent
	}
}

// DuplicateHash computes a goimagehash perceptual hash string for use by
// the pairwise duplicate-reporting utility in §4.1/§11. It is distinct
// from the hand-rolled bit-vector hash family above: goimagehash's own
// DCT-based perception hash does not expose the row-column/combined
// packing the spec requires bit-for-bit, so it is used here only for
// similarity scoring, never as a stored v_hash value.
func DuplicateHash(img image.Image) (string, error) {
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("hashpix: perception hash: %w", err)
	}
	return h.ToString(), nil
}

// DuplicateDistance parses two DuplicateHash strings and returns their
// Hamming distance plus similarity band.
func DuplicateDistance(a, b string) (int, SimilarityBand, error) {
	ha, err := goimagehash.ImageHashFromString(a)
	if err != nil {
		return 0, 0, fmt.Errorf("hashpix: parse hash a: %w", err)
	}
	hb, err := goimagehash.ImageHashFromString(b)
	if err != nil {
		return 0, 0, fmt.Errorf("hashpix: parse hash b: %w", err)
	}
	dist, err := ha.Distance(hb)
	if err != nil {
		return 0, 0, fmt.Errorf("hashpix: distance: %w", err)
	}
	return dist, ClassifyDistance(dist), nil
}
