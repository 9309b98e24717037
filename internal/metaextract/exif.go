package metaextract

import (
	"fmt"
	"strings"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ExifData is the subset of EXIF tags the extractor cares about,
// generalized from the teacher's internal/indexer/metadata.go tag
// switch into a reusable flat structure (no longer tied to one
// application-specific metadata struct).
type ExifData struct {
	Make, Model, LensMake, LensModel string
	ISO                              int
	Aperture                        float64
	ShutterNumerator                 int64
	ShutterDenominator               int64
	ShutterSpeedAPEX                 float64
	HasShutterSpeedAPEX              bool
	FocalLength                      float64
	FocalLength35mm                  int
	DateTimeOriginal                 time.Time
	DateTimeDigitized                time.Time
	DateTime                         time.Time
	Width, Height                    int
	Orientation                      int
}

// ExtractEXIF reads the EXIF tag dictionary out of raw file bytes. A
// failure here is a MetadataError (§7): partial/absent EXIF is not fatal
// to the surrounding extraction.
func ExtractEXIF(data []byte) (*ExifData, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return nil, fmt.Errorf("metaextract: no EXIF data: %w", err)
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("metaextract: parsing EXIF: %w", err)
	}

	d := &ExifData{}
	for _, entry := range entries {
		val := entry.Value
		if val == nil {
			continue
		}
		switch entry.TagName {
		case "Make":
			d.Make = cleanExifString(val)
		case "Model":
			d.Model = cleanExifString(val)
		case "LensMake":
			d.LensMake = cleanExifString(val)
		case "LensModel":
			d.LensModel = cleanExifString(val)
		case "ISOSpeedRatings", "PhotographicSensitivity":
			if v, ok := val.([]uint16); ok && len(v) > 0 {
				d.ISO = int(v[0])
			}
		case "FNumber":
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				d.Aperture = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		case "ExposureTime":
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 {
				d.ShutterNumerator = int64(rats[0].Numerator)
				d.ShutterDenominator = int64(rats[0].Denominator)
			}
		case "ShutterSpeedValue":
			if rats, ok := val.([]exifcommon.SignedRational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				d.ShutterSpeedAPEX = float64(rats[0].Numerator) / float64(rats[0].Denominator)
				d.HasShutterSpeedAPEX = true
			}
		case "FocalLength":
			if rats, ok := val.([]exifcommon.Rational); ok && len(rats) > 0 && rats[0].Denominator != 0 {
				d.FocalLength = float64(rats[0].Numerator) / float64(rats[0].Denominator)
			}
		case "FocalLengthIn35mmFilm":
			if v, ok := val.([]uint16); ok && len(v) > 0 {
				d.FocalLength35mm = int(v[0])
			}
		case "DateTimeOriginal":
			if s, ok := val.(string); ok {
				if t, err := parseExifDateTime(s); err == nil {
					d.DateTimeOriginal = t
				}
			}
		case "DateTimeDigitized":
			if s, ok := val.(string); ok {
				if t, err := parseExifDateTime(s); err == nil {
					d.DateTimeDigitized = t
				}
			}
		case "DateTime":
			if s, ok := val.(string); ok {
				if t, err := parseExifDateTime(s); err == nil {
					d.DateTime = t
				}
			}
		case "PixelXDimension", "ImageWidth":
			if n := uintVal(val); n > 0 {
				d.Width = n
			}
		case "PixelYDimension", "ImageLength":
			if n := uintVal(val); n > 0 {
				d.Height = n
			}
		case "Orientation":
			if v, ok := val.([]uint16); ok && len(v) > 0 {
				d.Orientation = int(v[0])
			}
		}
	}
	return d, nil
}

func uintVal(val interface{}) int {
	switch v := val.(type) {
	case []uint32:
		if len(v) > 0 {
			return int(v[0])
		}
	case []uint16:
		if len(v) > 0 {
			return int(v[0])
		}
	}
	return 0
}

func cleanExifString(val interface{}) string {
	return strings.Trim(fmt.Sprintf("%v", val), "\x00 ")
}

// parseExifDateTime tries every date layout EXIF producers are known to
// emit, adapted from the teacher's parseExifDateTime.
func parseExifDateTime(s string) (time.Time, error) {
	s = strings.Trim(s, "\x00 ")
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	layouts := []string{
		"2006:01:02 15:04:05",
		"2006:01:02 15:04:05.000",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z07:00",
		"2006:01:02",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse EXIF date: %q", s)
}
