package metaextract

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02 15:04:05"

// DeriveDate picks the first non-empty of: EXIF DateTimeOriginal,
// DateTimeDigitized, DateTime; XMP create/metadata dates; filesystem
// mtime/ctime (earlier of the two) — §4.3 step 4.
func DeriveDate(exifData *ExifData, xmpData *XMPData, mtime, ctime time.Time) string {
	candidates := []time.Time{}
	if exifData != nil {
		candidates = append(candidates, exifData.DateTimeOriginal, exifData.DateTimeDigitized, exifData.DateTime)
	}
	if xmpData != nil {
		candidates = append(candidates, xmpData.CreateDate, xmpData.MetadataDate)
	}
	for _, t := range candidates {
		if !t.IsZero() {
			return t.Format(isoDateLayout)
		}
	}
	fsTime := mtime
	if !ctime.IsZero() && ctime.Before(mtime) {
		fsTime = ctime
	}
	if fsTime.IsZero() {
		return ""
	}
	return fsTime.Format(isoDateLayout)
}

var (
	punctStrip    = regexp.MustCompile(`[^\w\s-]`)
	multiSpace    = regexp.MustCompile(`\s+`)
	genSuffixTrim = regexp.MustCompile(`(?i)\s*(company|corporation|corp\.?|inc\.?)\s*$`)
)

// makerAliases canonicalizes well-known manufacturer name variants, per
// §4.3 step 5's "small rule table (Olympus/Sanyo/Kodak/Samsung)".
var makerAliases = map[string]string{
	"olympus corporation":        "olympus",
	"olympus imaging corp.":      "olympus",
	"olympus optical co.,ltd":    "olympus",
	"sanyo electric co.,ltd.":    "sanyo",
	"eastman kodak company":      "kodak",
	"samsung techwin co., ltd.":  "samsung",
	"samsung electronics co.,ltd": "samsung",
}

// normalizeToken strips NULs/punctuation, collapses whitespace and
// replaces spaces with hyphens.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.Trim(s, "\x00 "))
	s = punctStrip.ReplaceAllString(s, "")
	s = genSuffixTrim.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ReplaceAll(s, " ", "-")
}

// MakerModel derives the normalized maker-model string (§4.3 step 5). An
// EXIF Make/Model of literally "Unknown" yields an empty maker.
func MakerModel(make, model string) string {
	makeLower := strings.ToLower(strings.TrimSpace(make))
	if makeLower == "" || makeLower == "unknown" {
		return normalizeToken(model)
	}
	if canon, ok := makerAliases[makeLower]; ok {
		makeLower = canon
	}
	makerNorm := normalizeToken(makeLower)
	modelNorm := normalizeToken(model)
	if modelNorm == "" {
		return makerNorm
	}
	// Strip a duplicated manufacturer prefix from the model.
	modelLower := strings.ToLower(modelNorm)
	makerLower := strings.ToLower(makerNorm)
	if strings.HasPrefix(modelLower, makerLower+"-") {
		modelNorm = modelNorm[len(makerNorm)+1:]
	} else if strings.HasPrefix(modelLower, makerLower) {
		modelNorm = modelNorm[len(makerNorm):]
		modelNorm = strings.TrimPrefix(modelNorm, "-")
	}
	if makerNorm == "" {
		return modelNorm
	}
	if modelNorm == "" {
		return makerNorm
	}
	return makerNorm + "-" + modelNorm
}

// FormatAperture renders an f-number as "f/X.X" (§4.3 step 6).
func FormatAperture(fNumber float64) string {
	if fNumber <= 0 {
		return ""
	}
	return fmt.Sprintf("f/%.1f", fNumber)
}

// FormatShutterSpeed renders an exposure-time rational as "1/Ns",
// computing the reciprocal when needed, matching teacher's three-way
// branch in metadata.go (generalized from an int-pair field pair). When
// the ExposureTime fraction is absent, it falls back to the APEX
// ShutterSpeedValue tag (seconds = 2^-apex), per §4.3 step 6.
func FormatShutterSpeed(numerator, denominator int64, apex float64, hasAPEX bool) string {
	if denominator == 0 {
		if hasAPEX {
			return formatShutterSeconds(math.Pow(2, -apex))
		}
		return ""
	}
	if numerator == denominator {
		return "1s"
	}
	if numerator == 1 {
		return fmt.Sprintf("1/%ds", denominator)
	}
	return formatShutterSeconds(float64(numerator) / float64(denominator))
}

func formatShutterSeconds(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	if seconds >= 1 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	recip := math.Round(1 / seconds)
	return fmt.Sprintf("1/%.0fs", recip)
}

// FormatFocalLength renders a focal length in millimeters (§4.3 step 6).
func FormatFocalLength(mm float64) string {
	if mm <= 0 {
		return ""
	}
	return fmt.Sprintf("%.0fmm", mm)
}
