package tools

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ResolveEncoding maps a textual encoding name to a codec.
// An empty name resolves to UTF-8, the platform text encoding.
// The same codec is used for both read and write so unaffected regions
// round-trip byte-for-byte.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "utf-8-bom", "utf-8-sig":
		return unicode.UTF8BOM, nil
	case "utf-16", "utf16":
		// BOM-aware on read, little-endian with BOM on write
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "ascii", "us-ascii":
		return asciiEncoding{}, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	}

	enc, err := htmlindex.Get(normalized)
	if err != nil {
		return nil, EncodingErrorf("Invalid encoding: %s", name)
	}
	return enc, nil
}

// DecodeBytes converts raw file bytes to text using the given codec
func DecodeBytes(enc encoding.Encoding, data []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", EncodingErrorf("decode content: %v", err)
	}
	return string(decoded), nil
}

// EncodeText converts text back to raw bytes using the given codec
func EncodeText(enc encoding.Encoding, text string) ([]byte, error) {
	encoded, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, EncodingErrorf("encode content: %v", err)
	}
	return encoded, nil
}

// asciiEncoding is strict 7-bit ASCII. x/text ships no standalone ASCII
// codec; bytes above 0x7F fail in both directions.
type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: asciiValidator{}}
}

func (asciiEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: asciiValidator{}}
}

type asciiValidator struct{}

func (asciiValidator) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		if src[i] > 0x7F {
			return i, i, fmt.Errorf("byte 0x%02x is not ASCII", src[i])
		}
		dst[i] = src[i]
	}
	return n, n, err
}

func (asciiValidator) Reset() {}
