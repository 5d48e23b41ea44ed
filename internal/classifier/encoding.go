package classifier

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

const (
	// DefaultEncoding is reported when no candidate decodes the sample
	DefaultEncoding = "ascii"
	// DefaultLanguage is reported when detection gives nothing usable
	DefaultLanguage = "en"
)

// Candidate is one encoding tried by the detector
type Candidate struct {
	Name   string
	decode func(sample []byte) bool
}

// Decodes reports whether the sample decodes strictly under this candidate
func (c Candidate) Decodes(sample []byte) bool {
	return c.decode(sample)
}

// DefaultCandidates is the ordered candidate list. Order is the tie-break.
var DefaultCandidates = []Candidate{
	{"ascii", isASCII},
	fromEncoding("windows-1250", charmap.Windows1250),
	{"utf-8", utf8.Valid},
	fromEncoding("utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)),
	fromEncoding("utf-16be", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)),
	fromEncoding("iso-8859-1", charmap.ISO8859_1),
	fromEncoding("iso-8859-2", charmap.ISO8859_2),
	fromEncoding("iso-8859-3", charmap.ISO8859_3),
	fromEncoding("iso-8859-4", charmap.ISO8859_4),
	fromEncoding("iso-8859-5", charmap.ISO8859_5),
	fromEncoding("iso-8859-6", charmap.ISO8859_6),
	fromEncoding("iso-8859-7", charmap.ISO8859_7),
	fromEncoding("iso-8859-8", charmap.ISO8859_8),
	fromEncoding("iso-8859-10", charmap.ISO8859_10),
	fromEncoding("iso-8859-13", charmap.ISO8859_13),
	fromEncoding("iso-8859-14", charmap.ISO8859_14),
	fromEncoding("iso-8859-15", charmap.ISO8859_15),
	fromEncoding("iso-8859-16", charmap.ISO8859_16),
	fromEncoding("koi8-r", charmap.KOI8R),
	fromEncoding("koi8-u", charmap.KOI8U),
	fromEncoding("macintosh", charmap.Macintosh),
	fromEncoding("windows-874", charmap.Windows874),
	fromEncoding("windows-949", korean.EUCKR),
	fromEncoding("windows-1251", charmap.Windows1251),
	fromEncoding("windows-1252", charmap.Windows1252),
	fromEncoding("windows-1253", charmap.Windows1253),
	fromEncoding("windows-1254", charmap.Windows1254),
	fromEncoding("windows-1255", charmap.Windows1255),
	fromEncoding("windows-1256", charmap.Windows1256),
	fromEncoding("windows-1257", charmap.Windows1257),
	fromEncoding("windows-1258", charmap.Windows1258),
}

// fromEncoding builds a candidate whose decode fails on any replacement character
func fromEncoding(name string, enc encoding.Encoding) Candidate {
	return Candidate{
		Name: name,
		decode: func(sample []byte) bool {
			decoded, err := enc.NewDecoder().Bytes(sample)
			if err != nil {
				return false
			}
			for len(decoded) > 0 {
				r, size := utf8.DecodeRune(decoded)
				if r == utf8.RuneError {
					return false
				}
				decoded = decoded[size:]
			}
			return true
		},
	}
}

func isASCII(sample []byte) bool {
	for _, b := range sample {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// EncodingDetector picks the first candidate that decodes a sample strictly
type EncodingDetector struct {
	candidates []Candidate
}

// NewEncodingDetector creates a detector over the given ordered candidates;
// nil means DefaultCandidates
func NewEncodingDetector(candidates []Candidate) *EncodingDetector {
	if candidates == nil {
		candidates = DefaultCandidates
	}
	return &EncodingDetector{candidates: candidates}
}

// Detect returns the winning candidate name, or DefaultEncoding and false
func (d *EncodingDetector) Detect(sample []byte) (string, bool) {
	for _, c := range d.candidates {
		if c.Decodes(sample) {
			return c.Name, true
		}
	}
	return DefaultEncoding, false
}

// DetectEncoding runs the default detector
func DetectEncoding(sample []byte) (string, bool) {
	return NewEncodingDetector(nil).Detect(sample)
}
