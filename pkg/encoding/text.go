// Package encoding decodes the legacy 8-bit text found in exported model
// files. Exporters on Windows often write material and texture names in
// the ANSI code page instead of UTF-8.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// ToUTF8 returns data as UTF-8. Valid UTF-8 is kept as is; anything else is
// read as Windows-1252. A leading byte order mark is dropped.
func ToUTF8(data []byte) string {
	data = bytes.TrimPrefix(data, bom)
	if utf8.Valid(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// NormalizePath converts backslashes to forward slashes for lookups.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
