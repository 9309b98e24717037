//go:build cgo

package metaextract

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	golibraw "github.com/inokone/golibraw"
)

// RawBackend identifies which RAW decode implementation is compiled in.
const RawBackend = "inokone/golibraw"

// DecodeRAW decodes a RAW image file (CR2/NEF/ARW/DNG/...) via LibRaw.
func DecodeRAW(path string) (image.Image, error) {
	img, err := golibraw.ImportRaw(path)
	if err != nil {
		return nil, fmt.Errorf("metaextract: libraw decode: %w", err)
	}
	return img, nil
}

// RAWSupported reports whether this build was compiled with CGO/LibRaw.
func RAWSupported() bool {
	return true
}

// ExtractEmbeddedJPEG finds the largest embedded JPEG preview inside a
// TIFF-based RAW container (DNG and many CR2/NEF files carry one or more),
// scanning for SOI/EOI marker pairs and keeping the biggest valid one.
func ExtractEmbeddedJPEG(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("metaextract: reading %s: %w", path, err)
	}

	var largest []byte
	for i := 0; i < len(data)-1; i++ {
		if data[i] != 0xFF || data[i+1] != 0xD8 {
			continue
		}
		start := i
		for j := start + 2; j < len(data)-1; j++ {
			if data[j] == 0xFF && data[j+1] == 0xD9 {
				end := j + 2
				candidate := data[start:end]
				if len(candidate) > len(largest) {
					if _, err := jpeg.DecodeConfig(bytes.NewReader(candidate)); err == nil {
						largest = candidate
					}
				}
				i = end - 1
				break
			}
		}
	}
	if largest == nil {
		return nil, fmt.Errorf("metaextract: no embedded JPEG preview found in %s", path)
	}
	img, err := jpeg.Decode(bytes.NewReader(largest))
	if err != nil {
		return nil, fmt.Errorf("metaextract: decoding embedded JPEG: %w", err)
	}
	return img, nil
}
