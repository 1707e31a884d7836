package dataloader

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCandidate is one entry in the ordered decoder ladder. decode returns
// an error when the input is not valid in that encoding.
type decodeCandidate struct {
	name   string
	decode func(data []byte) (string, error)
}

// decoderLadder lists candidate text encodings in the order they are tried.
// UTF-8 comes first; the final entry substitutes invalid bytes and cannot
// fail, so it only applies once everything else has been exhausted.
var decoderLadder = []decodeCandidate{
	{name: "utf-8", decode: decodeUTF8Strict},
	{name: "latin-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "iso-8859-1", decode: decodeCharmap(charmap.ISO8859_1)},
	{name: "cp1252", decode: decodeCharmap(charmap.Windows1252)},
	{name: "utf-8-sig", decode: decodeUTF8SIG},
	{name: "utf-8-replace", decode: decodeUTF8Replace},
}

// decodeText runs the ladder and returns the decoded text along with the name
// of the encoding that succeeded.
func decodeText(data []byte) (string, string, error) {
	var lastErr error
	for _, c := range decoderLadder {
		text, err := c.decode(data)
		if err != nil {
			lastErr = err
			continue
		}
		return text, c.name, nil
	}
	return "", "", fmt.Errorf("%w: %v", ErrDecodeFailed, lastErr)
}

func decodeUTF8Strict(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8 byte sequence")
	}
	return string(data), nil
}

func decodeUTF8SIG(data []byte) (string, error) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return "", fmt.Errorf("missing UTF-8 BOM")
	}
	dec := unicode.UTF8BOM.NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return decodeUTF8Strict(out)
}

func decodeUTF8Replace(data []byte) (string, error) {
	return string(bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))), nil
}

func decodeCharmap(cm *charmap.Charmap) func(data []byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
