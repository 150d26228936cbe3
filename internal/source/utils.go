package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// decodeLatin1 converts ISO 8859-1 bytes to UTF-8. PVL labels are defined
// over Latin-1, so anything that is not already UTF-8 is read that way.
func decodeLatin1(content []byte) ([]byte, bool) {
	if utf8.Valid(content) {
		return content, false
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		// ISO 8859-1 maps every byte, the decoder cannot fail on input.
		return content, false
	}
	return out, true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol maps off to a 1-based position. The line is one more than
// the number of '\n' strictly before off; columns count bytes.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line, _ := slices.BinarySearch(lineIdx, off)
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
