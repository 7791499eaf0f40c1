package search

import (
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a text encoding the detector can report.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

// DetectEncoding reports whether the file decodes as UTF-8, falling back to
// Latin-1 when it does not. Any failure on the fallback read yields UTF-8.
// This is a heuristic: every byte sequence that is not valid UTF-8 is
// reported as Latin-1 regardless of its real encoding.
func DetectEncoding(fsys afero.Fs, path string) Encoding {
	data, err := afero.ReadFile(fsys, path)
	if err != nil || utf8.Valid(data) {
		return EncodingUTF8
	}

	data, err = afero.ReadFile(fsys, path)
	if err != nil {
		return EncodingUTF8
	}
	if _, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err != nil {
		return EncodingUTF8
	}
	return EncodingLatin1
}

// DetectBytes applies the DetectEncoding decision to an in-memory buffer.
func DetectBytes(data []byte) Encoding {
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingLatin1
}

// Decode converts data to a string using enc. Bytes that are invalid in the
// encoding are replaced with U+FFFD instead of failing.
func Decode(data []byte, enc Encoding) (string, error) {
	out, err := decoderFor(enc).Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decoderFor(enc Encoding) *encoding.Decoder {
	if enc == EncodingLatin1 {
		return charmap.ISO8859_1.NewDecoder()
	}
	return unicode.UTF8.NewDecoder()
}
