package metaextract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"
)

// XMPData is the subset of XMP fields the extractor pulls, restoring the
// rating/label/keywords/headline/caption optional metadata §11
// supplements and the creation-date fallbacks §4.3 step 4 needs.
type XMPData struct {
	CreateDate   time.Time
	MetadataDate time.Time
	Rating       string
	Label        string
	Keywords     []string
	Headline     string
	Caption      string
}

type xmpRDF struct {
	Description []xmpDescription `xml:"Description"`
}

type xmpDescription struct {
	CreateDate   string `xml:"CreateDate,attr"`
	ModifyDate   string `xml:"ModifyDate,attr"`
	MetadataDate string `xml:"MetadataDate,attr"`
	Rating       string `xml:"Rating,attr"`
	Label        string `xml:"Label,attr"`
	Description  struct {
		Alt struct {
			Li []string `xml:"li"`
		} `xml:"Alt"`
	} `xml:"description"`
	Headline struct {
		Alt struct {
			Li []string `xml:"li"`
		} `xml:"Alt"`
	} `xml:"headline"`
	Subject struct {
		Bag struct {
			Li []string `xml:"li"`
		} `xml:"Bag"`
	} `xml:"subject"`
}

type xmpMeta struct {
	XMLName xml.Name `xml:"xmpmeta"`
	RDF     xmpRDF   `xml:"RDF"`
}

// ExtractXMP locates the embedded `<x:xmpmeta>` packet in raw file bytes
// (JPEG, TIFF and many RAW containers all carry it as a plain-text XML
// island between `<?xpacket begin...?>` and `<?xpacket end="w"?>`) and
// parses it as RDF/XML. No third-party XMP library in the retrieval pack
// had a resolvable go.mod (see DESIGN.md); XMP is itself RDF/XML so
// stdlib encoding/xml parses the packet directly.
func ExtractXMP(data []byte) (*XMPData, error) {
	packet := findXMPPacket(data)
	if packet == nil {
		return nil, fmt.Errorf("metaextract: no XMP packet found")
	}
	var meta xmpMeta
	if err := xml.Unmarshal(packet, &meta); err != nil {
		return nil, fmt.Errorf("metaextract: parsing XMP packet: %w", err)
	}
	out := &XMPData{}
	for _, desc := range meta.RDF.Description {
		if out.CreateDate.IsZero() && desc.CreateDate != "" {
			if t, err := parseXMPDate(desc.CreateDate); err == nil {
				out.CreateDate = t
			}
		}
		if out.MetadataDate.IsZero() {
			raw := desc.MetadataDate
			if raw == "" {
				raw = desc.ModifyDate
			}
			if raw != "" {
				if t, err := parseXMPDate(raw); err == nil {
					out.MetadataDate = t
				}
			}
		}
		if out.Rating == "" {
			out.Rating = desc.Rating
		}
		if out.Label == "" {
			out.Label = desc.Label
		}
		if len(out.Keywords) == 0 && len(desc.Subject.Bag.Li) > 0 {
			out.Keywords = desc.Subject.Bag.Li
		}
		if out.Headline == "" && len(desc.Headline.Alt.Li) > 0 {
			out.Headline = desc.Headline.Alt.Li[0]
		}
		if out.Caption == "" && len(desc.Description.Alt.Li) > 0 {
			out.Caption = desc.Description.Alt.Li[0]
		}
	}
	return out, nil
}

var xpacketBegin = []byte("<?xpacket begin")
var xpacketEnd = []byte("<?xpacket end")
var xmpmetaOpen = []byte("<x:xmpmeta")

func findXMPPacket(data []byte) []byte {
	start := bytes.Index(data, xmpmetaOpen)
	if start == -1 {
		start = bytes.Index(data, xpacketBegin)
		if start == -1 {
			return nil
		}
	}
	endMarker := bytes.Index(data[start:], xpacketEnd)
	var end int
	if endMarker == -1 {
		closeTag := bytes.Index(data[start:], []byte("</x:xmpmeta>"))
		if closeTag == -1 {
			return nil
		}
		end = start + closeTag + len("</x:xmpmeta>")
	} else {
		rest := data[start+endMarker:]
		closer := bytes.IndexByte(rest, '>')
		if closer == -1 {
			return nil
		}
		end = start + endMarker + closer + 1
	}
	return data[start:end]
}

// parseXMPDate tries the ISO 8601 variants XMP producers emit.
func parseXMPDate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse XMP date: %q", s)
}

// RatingInt converts the XMP Rating string (0-5) to an int, blank on
// failure.
func (x *XMPData) RatingInt() (int, bool) {
	if x == nil || x.Rating == "" {
		return 0, false
	}
	n, err := strconv.Atoi(x.Rating)
	if err != nil {
		return 0, false
	}
	return n, true
}
