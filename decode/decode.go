// Package decode adapts raw byte streams of varying text encodings into
// the swiftcsv.ScalarSource the core tokenizer consumes. Encoding
// detection (a UTF-8, UTF-16LE/BE or UTF-32LE/BE byte-order mark; input
// without one is read as UTF-8) is deliberately kept external to the core:
// the core only ever sees scalars, never bytes.
package decode

import (
	"bufio"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/csvkit/swiftcsv"
)

// Encoding names the text encoding of a byte stream.
type Encoding int

const (
	// UTF8 is the default assumption when no BOM is present.
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var bomTable = []struct {
	prefix []byte
	enc    Encoding
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, UTF32LE},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, UTF32BE},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
}

// Sniff inspects up to the first 4 bytes of data for a byte-order mark and
// reports the encoding it implies along with the BOM's length in bytes (0
// if none was found, in which case UTF8 is assumed).
func Sniff(data []byte) (enc Encoding, bomLen int) {
	for _, candidate := range bomTable {
		if len(data) >= len(candidate.prefix) && hasPrefix(data, candidate.prefix) {
			return candidate.enc, len(candidate.prefix)
		}
	}
	return UTF8, 0
}

func hasPrefix(data, prefix []byte) bool {
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}
	return true
}

// textEncoding maps an Encoding to its golang.org/x/text/encoding
// implementation, nil for UTF8 (which needs no transform).
func textEncoding(enc Encoding) encoding.Encoding {
	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return nil
	}
}

// Source wraps r, sniffing its encoding from a BOM (if present) and
// transcoding to UTF-8 before handing scalars to the caller through
// swiftcsv.ScalarSource. When no BOM is found the stream is assumed to
// already be UTF-8 and is passed through untouched.
func Source(r io.Reader) (swiftcsv.ScalarSource, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(4)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	enc, bomLen := Sniff(peek)
	if bomLen > 0 {
		if _, err := br.Discard(bomLen); err != nil {
			return nil, err
		}
	}

	te := textEncoding(enc)
	if te == nil {
		return swiftcsv.FromReader(br), nil
	}

	decoded := transform.NewReader(br, te.NewDecoder())
	return swiftcsv.FromReader(decoded), nil
}
