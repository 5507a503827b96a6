// Package text handles conversions between LSP positions and byte offsets.
// LSP uses 0-based line/column positions with UTF-16 code units for columns;
// document text is stored as UTF-8, so every range operation translates.
package text

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2 // Surrogate pair
		} else {
			n++
		}
	}
	return n
}

// OffsetForPosition converts an LSP position to a byte offset into s.
// Positions past the end of a line clamp to the end of that line; lines
// past the end of the text clamp to len(s).
func OffsetForPosition(s string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := strings.IndexByte(s[offset:], '\n')
		if next < 0 {
			return len(s)
		}
		offset += next + 1
	}

	units := protocol.UInteger(0)
	for i, r := range s[offset:] {
		if units >= pos.Character || r == '\n' {
			return offset + i
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return len(s)
}

// EndPosition returns the position just past the last character of s:
// the line index is the number of newlines, the character is the UTF-16
// length of whatever follows the final newline.
func EndPosition(s string) protocol.Position {
	lastNL := strings.LastIndexByte(s, '\n')
	return protocol.Position{
		Line:      protocol.UInteger(strings.Count(s, "\n")),
		Character: protocol.UInteger(UTF16Len(s[lastNL+1:])),
	}
}
