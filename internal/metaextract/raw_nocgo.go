//go:build !cgo

package metaextract

import (
	"errors"
	"image"
)

// RawBackend identifies that RAW support is disabled in this build.
const RawBackend = "disabled (CGO required)"

// DecodeRAW stub for non-CGO builds.
func DecodeRAW(path string) (image.Image, error) {
	return nil, errors.New("metaextract: RAW decoding requires a CGO build with LibRaw")
}

// RAWSupported reports whether this build was compiled with CGO/LibRaw.
func RAWSupported() bool {
	return false
}

// ExtractEmbeddedJPEG stub for non-CGO builds.
func ExtractEmbeddedJPEG(path string) (image.Image, error) {
	return nil, errors.New("metaextract: embedded JPEG extraction requires a CGO build")
}
