// Package textutil holds byte-level checks run on exports before decoding.
package textutil

import "bytes"

// BinarySniffLength bounds the prefix scanned for NUL bytes.
const BinarySniffLength = 8000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsBinary reports whether data has a NUL byte in its first
// BinarySniffLength bytes. Text exports never do.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), BinarySniffLength)], 0) >= 0
}

// TrimBOM drops a leading UTF-8 byte order mark, as written by some
// spreadsheet and notes apps.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
