package metaextract

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var rawExtensions = map[string]bool{
	".dng": true,
	".cr2": true,
	".nef": true,
	".raf": true,
	".arw": true,
	".orf": true,
	".rw2": true,
}

// IsRawExtension reports whether ext (as from filepath.Ext, case folded)
// names a RAW container format.
func IsRawExtension(ext string) bool {
	return rawExtensions[strings.ToLower(ext)]
}

// DecodeImage decodes the pixel data at path, routing RAW extensions
// through the RAW backend (falling back to an embedded JPEG preview, and
// returning an error when neither works) and everything else through the
// standard library's registered image.Decode codecs. The returned format
// string is the decoder's own report (§4.3's "format: decoder-reported"
// invariant), not a guess from the file extension; for RAW containers,
// whose embedded-preview decoder always reports "jpeg", the container's
// own extension is reported instead since that is the file's real format.
func DecodeImage(path string) (image.Image, string, error) {
	ext := filepath.Ext(path)
	if IsRawExtension(ext) {
		rawFormat := strings.ToUpper(strings.TrimPrefix(ext, "."))
		if RAWSupported() {
			img, err := DecodeRAW(path)
			if err == nil {
				return img, rawFormat, nil
			}
			log.Printf("metaextract: RAW decode failed for %s: %v, trying embedded preview", filepath.Base(path), err)
		}
		img, err := ExtractEmbeddedJPEG(path)
		if err == nil {
			return img, rawFormat, nil
		}
		log.Printf("metaextract: embedded preview extraction failed for %s: %v", filepath.Base(path), err)
		return nil, "", fmt.Errorf("metaextract: no decodable image data in %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("metaextract: opening %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("metaextract: decoding %s: %w", path, err)
	}
	return img, strings.ToUpper(format), nil
}

// EncodeJPEGFallback re-encodes img as a JPEG byte slice. Nothing in this
// module calls it; EncodeThumbnail does its own encoding (the teacher's
// indexer.go does the same when thumbnail generation yields nothing for
// a too-small source image).
func EncodeJPEGFallback(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("metaextract: jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}
