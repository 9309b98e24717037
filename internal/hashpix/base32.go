package hashpix

import "math/big"

// packBits interprets a bit vector (MSB first) as an unsigned integer,
// mirroring the original's array_to_string flattening of a boolean grid.
func packBits(bits []bool) *big.Int {
	n := new(big.Int)
	one := big.NewInt(1)
	for _, b := range bits {
		n.Lsh(n, 1)
		if b {
			n.Or(n, one)
		}
	}
	return n
}

// fixedWidth returns how many base-32 digits are needed to represent the
// largest possible value of an nbits-wide bit vector — the same quantity
// the original computes via to_base(2**nbits - 1, base) and then zfills to.
func fixedWidth(nbits int) int {
	if nbits <= 0 {
		return 0
	}
	allOnes := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(nbits)), big.NewInt(1))
	return len(allOnes.Text(32))
}

// serializeBits renders a bit vector as a fixed-width base-32 string using
// the alphabet 0-9a-v (Go's big.Int.Text(32) already emits exactly this
// alphabet for bases <= 36), zero-padded so every hash of the same bit
// width produces equal-length output — the spec's "fixed width per
// algorithm" serialization contract.
func serializeBits(bits []bool) string {
	width := fixedWidth(len(bits))
	s := packBits(bits).Text(32)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
