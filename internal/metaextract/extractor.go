// Package metaextract implements the per-image meta extractor: image
// decoding, EXIF/XMP parsing, derived-field computation, thumbnail set
// construction, and the perceptual/cryptographic hash and color algorithm
// passes that feed a meta record.
package metaextract

import (
	"crypto/sha256"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/adewale/imgdb/internal/colorstats"
	"github.com/adewale/imgdb/internal/config"
	"github.com/adewale/imgdb/internal/hashpix"
	"github.com/adewale/imgdb/internal/imgmeta"
)

// Result is the output of Extract: the decoded image handle (for caller
// reuse, e.g. an archive-file materializer re-encoding a preview) and the
// meta record built from it. Either may be nil/empty per §4.3.
type Result struct {
	Image        image.Image
	Record       imgmeta.Record
	ThumbDataURI string
}

// Extract runs the full twelve-step pipeline against a single file.
func Extract(path string, cfg *config.Config) (Result, error) {
	info, statErr := os.Stat(path)

	// Step 1: decode.
	img, format, err := DecodeImage(path)
	if err != nil {
		return Result{}, fmt.Errorf("metaextract: decode: %w", err)
	}

	// Step 2: RAW re-decode already happened inside DecodeImage for RAW
	// extensions (auto white balance / no auto-brightness is the
	// responsibility of the RAW backend itself).

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return Result{Image: img}, fmt.Errorf("metaextract: reading %s: %w", path, readErr)
	}

	// Step 3: pull EXIF/XMP into a merged dictionary.
	exifData, exifErr := ExtractEXIF(raw)
	if exifErr != nil {
		exifData = &ExifData{}
	}
	xmpData, xmpErr := ExtractXMP(raw)
	if xmpErr != nil {
		xmpData = &XMPData{}
	}

	rec := imgmeta.Record{}
	bounds := img.Bounds()
	rec[imgmeta.FieldPth] = path
	rec[imgmeta.FieldFormat] = format
	rec[imgmeta.FieldMode] = colorModeName(img)
	rec[imgmeta.FieldWidth] = fmt.Sprintf("%d", bounds.Dx())
	rec[imgmeta.FieldHeight] = fmt.Sprintf("%d", bounds.Dy())
	if statErr == nil {
		rec[imgmeta.FieldBytes] = fmt.Sprintf("%d", info.Size())
	}

	// Step 4: date.
	var mtime, ctime time.Time
	if statErr == nil {
		mtime = info.ModTime()
		ctime = statCtime(info)
	}
	rec[imgmeta.FieldDate] = DeriveDate(exifData, xmpData, mtime, ctime)

	// Step 5: maker-model.
	rec[imgmeta.FieldMakerModel] = MakerModel(exifData.Make, exifData.Model)

	// Step 6: optional fields.
	applyOptionalFields(rec, cfg.Metadata, exifData, xmpData)

	// Step 7: filter short-circuit happens one layer up, in the ingest
	// package, once width/height are injected into the query-engine
	// evaluation context — Extract always returns the full record so the
	// caller can run the filter itself.

	// Step 8: thumbnail set.
	thumbs := BuildThumbnailSet(img, cfg.ThumbSize)
	thumbDataURI, thumbErr := EncodeThumbnailDataURI(thumbs.Embedded, cfg.ThumbType, cfg.ThumbQuality)
	if thumbErr != nil {
		thumbDataURI = ""
	}

	// Step 9: algorithms, run on the 256x256 thumbnail.
	for _, algo := range cfg.Algorithms {
		val, algoErr := runAlgorithm(algo, thumbs.ForAlgo, cfg)
		if algoErr != nil {
			continue
		}
		rec[algo] = val
	}

	// Step 10: perceptual hashes, run on the 64x64 thumbnail (blur-hash
	// uses the 256x256 thumbnail per §4.3 step 8).
	for _, vhash := range cfg.VHashes {
		source := thumbs.ForHash
		if vhash == "blurhash" {
			source = thumbs.ForAlgo
		}
		digest, hashErr := hashpix.Compute(vhash, source)
		if hashErr != nil {
			continue
		}
		rec[vhash] = digest
	}

	// Step 11: cryptographic hashes over the decoded pixel bytes.
	pixelBytes := pixelData(img)
	for _, chash := range cfg.CHashes {
		digest, digestErr := hashpix.CryptoDigest(pixelBytes, chash, cfg.HashDigestSize)
		if digestErr != nil {
			continue
		}
		rec[chash] = digest
	}

	// Step 12: id derivation.
	id, idErr := EvaluateTemplate(cfg.UID, rec)
	if idErr != nil || id == "" {
		id = fallbackID(raw)
	}
	rec[imgmeta.FieldID] = id

	return Result{Image: img, Record: rec, ThumbDataURI: thumbDataURI}, nil
}

func runAlgorithm(algo string, img image.Image, cfg *config.Config) (string, error) {
	switch algo {
	case "illumination":
		return fmt.Sprintf("%.2f", colorstats.Illumination(img)), nil
	case "saturation":
		return fmt.Sprintf("%.2f", colorstats.Saturation(img)), nil
	case "contrast":
		return fmt.Sprintf("%.2f", colorstats.Contrast(img)), nil
	case "top-colors":
		return joinSemicolon(colorstats.TopColors(img, cfg.TopColorChannels, cfg.TopColorCut)), nil
	case "dominant-colors":
		colors, err := colorstats.DominantColors(img, cfg.TopColorChannels)
		if err != nil || len(colors) == 0 {
			return "", fmt.Errorf("metaextract: dominant-colors: %w", err)
		}
		return joinSemicolon(colors), nil
	default:
		return "", fmt.Errorf("metaextract: unknown algorithm %q", algo)
	}
}

func applyOptionalFields(rec imgmeta.Record, requested []string, exifData *ExifData, xmpData *XMPData) {
	want := make(map[string]bool, len(requested))
	for _, f := range requested {
		want[f] = true
	}
	if want["aperture"] {
		rec["aperture"] = FormatAperture(exifData.Aperture)
	}
	if want["shutter-speed"] {
		rec["shutter-speed"] = FormatShutterSpeed(exifData.ShutterNumerator, exifData.ShutterDenominator, exifData.ShutterSpeedAPEX, exifData.HasShutterSpeedAPEX)
	}
	if want["focal-length"] {
		rec["focal-length"] = FormatFocalLength(exifData.FocalLength)
	}
	if want["iso"] && exifData.ISO > 0 {
		rec["iso"] = fmt.Sprintf("%d", exifData.ISO)
	}
	if want["lens"] {
		rec["lens"] = MakerModel(exifData.LensMake, exifData.LensModel)
	}
	if want["rating"] {
		if n, ok := xmpData.RatingInt(); ok {
			rec["rating"] = fmt.Sprintf("%d", n)
		}
	}
	if want["label"] {
		rec["label"] = xmpData.Label
	}
	if want["keywords"] {
		rec["keywords"] = joinSemicolon(xmpData.Keywords)
	}
	if want["headline"] {
		rec["headline"] = xmpData.Headline
	}
	if want["caption"] {
		rec["caption"] = xmpData.Caption
	}
}

func joinSemicolon(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ";"
		}
		out += v
	}
	return out
}

func colorModeName(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.CMYK:
		return "CMYK"
	default:
		return "RGB"
	}
}

func pixelData(img image.Image) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out = append(out, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return out
}

// fallbackID is used when the id template fails to evaluate (e.g. it
// references a hash that wasn't configured); it guarantees Extract never
// returns a record with a blank id.
func fallbackID(raw []byte) string {
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum[:12])
}
