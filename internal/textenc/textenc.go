// Package textenc decodes configuration files that may be UTF-8 or Latin-1.
package textenc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Encoding names accepted by Decode.
const (
	Auto   = "auto"
	UTF8   = "utf-8"
	Latin1 = "latin-1"
)

// Canonical maps an accepted encoding name or alias to Auto, UTF8 or Latin1.
func Canonical(encoding string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", Auto:
		return Auto, true
	case UTF8, "utf8":
		return UTF8, true
	case Latin1, "latin1", "iso-8859-1":
		return Latin1, true
	default:
		return "", false
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to a string.
//
// With Auto, valid UTF-8 is returned as is and anything else is read as
// ISO-8859-1, which maps every byte to a rune and therefore never fails.
func Decode(data []byte, encoding string) (string, error) {
	canonical, ok := Canonical(encoding)
	if !ok {
		return "", fmt.Errorf("unsupported encoding: %s", encoding)
	}
	switch canonical {
	case UTF8:
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	case Latin1:
		return decodeLatin1(data)
	default:
		if utf8.Valid(data) {
			return string(bytes.TrimPrefix(data, utf8BOM)), nil
		}
		return decodeLatin1(data)
	}
}

func decodeLatin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode latin-1: %w", err)
	}
	return string(out), nil
}

// ReadFile reads path and decodes it with Decode.
func ReadFile(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Decode(data, encoding)
}

// CharsetReader converts a document declared in a non UTF-8 charset, for use
// as xml.Decoder.CharsetReader.
func CharsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
