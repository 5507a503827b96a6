// Package format defines the boundary between the language server and the
// text-transformation step that implements formatting, and computes the
// whole-document edit the server responds with.
package format

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/fmtls/internal/text"
)

// Formatter is the external formatting transform. Implementations must be
// deterministic and idempotent: formatting already-canonical text returns
// that same text unchanged. Rejected input is reported by an error wrapping
// errors.ErrParseFailure; the server never retries.
type Formatter interface {
	Format(src string) (string, error)
}

// DocumentEdits runs the formatter over src and converts the outcome into
// the edit list for a textDocument/formatting response. Already-canonical
// text yields an empty (non-nil) list — an explicit no-op, not an error.
// Otherwise the whole document is replaced with a single edit spanning
// (0,0) to the end of the formatted text; no minimal diff is attempted.
func DocumentEdits(f Formatter, src string) ([]protocol.TextEdit, error) {
	formatted, err := f.Format(src)
	if err != nil {
		return nil, err
	}

	if formatted == src {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   text.EndPosition(formatted),
			},
			NewText: formatted,
		},
	}, nil
}
