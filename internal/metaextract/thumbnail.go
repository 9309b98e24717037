package metaextract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
)

// Thumbnail sizes §4.3 step 8 requires: perceptual hashes always see the
// 64x64 thumbnail, algorithms and blur-hash see the 256x256 thumbnail, and
// the embedded archive preview uses the user-configured size.
const (
	HashThumbSize = 64
	AlgoThumbSize = 256
)

// ThumbnailSet holds the three decoded thumbnails built from one source
// image, keeping perceptual hash computation independent of the
// user-configurable preview size (§4.3 step 8's determinism contract).
type ThumbnailSet struct {
	ForHash  image.Image
	ForAlgo  image.Image
	Embedded image.Image
}

// BuildThumbnailSet resizes img (preserving aspect ratio, longest edge
// constrained) into the fixed 64x64 and 256x256 working thumbnails plus a
// user-size preview, mirroring the teacher's longest-edge constraint in
// thumbnail.go generalized to three independent targets.
func BuildThumbnailSet(img image.Image, previewSize int) ThumbnailSet {
	return ThumbnailSet{
		ForHash:  resizeLongestEdge(img, HashThumbSize),
		ForAlgo:  resizeLongestEdge(img, AlgoThumbSize),
		Embedded: resizeLongestEdge(img, previewSize),
	}
}

func resizeLongestEdge(img image.Image, maxDimension int) image.Image {
	bounds := img.Bounds()
	width, height := uint(bounds.Dx()), uint(bounds.Dy())
	var newWidth, newHeight uint
	if width >= height {
		newWidth = uint(maxDimension)
	} else {
		newHeight = uint(maxDimension)
	}
	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

// EncodeThumbnail encodes img per thumbType ("webp", "jpeg", "png"; "avif"
// is accepted by config but has no encoder here, so it is encoded as
// webp) at the given quality
// (ignored for png).
func EncodeThumbnail(img image.Image, thumbType string, quality int) ([]byte, string, error) {
	img = ensureEncodable(img)
	var buf bytes.Buffer
	switch thumbType {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("metaextract: jpeg encode: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("metaextract: png encode: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	case "webp", "avif":
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, "", fmt.Errorf("metaextract: webp encode: %w", err)
		}
		return buf.Bytes(), "image/webp", nil
	default:
		return nil, "", fmt.Errorf("metaextract: unsupported thumbnail type %q", thumbType)
	}
}

// EncodeThumbnailDataURI encodes img and wraps it as a base64 data URI,
// the embedded-thumbnail form the archive document stores per record.
func EncodeThumbnailDataURI(img image.Image, thumbType string, quality int) (string, error) {
	data, mediaType, err := EncodeThumbnail(img, thumbType, quality)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data)), nil
}

// ensureEncodable converts Gray and other encoder-unfriendly image types
// to RGBA, mirroring the teacher's Gray-to-RGBA conversion in
// GenerateThumbnailsFromImage (the JPEG encoder there rejects raw Gray).
func ensureEncodable(img image.Image) image.Image {
	if _, ok := img.(*image.RGBA); ok {
		return img
	}
	if _, ok := img.(*image.NRGBA); ok {
		return img
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba
}
