// Package jsonfmt canonicalizes JSON documents. Validation and formatting
// are split: gjson decides whether the input parses at all, and pretty
// produces the canonical rendering. Both passes are pure text-to-text, so
// the formatter is deterministic and idempotent.
package jsonfmt

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/teranos/fmtls/errors"
)

// Formatter canonicalizes JSON text.
type Formatter struct {
	opts *pretty.Options
}

// New creates a formatter. indent is the per-level indentation string;
// sortKeys orders object keys alphabetically.
func New(indent string, sortKeys bool) *Formatter {
	if indent == "" {
		indent = "  "
	}
	return &Formatter{
		opts: &pretty.Options{
			Width:    80,
			Indent:   indent,
			SortKeys: sortKeys,
		},
	}
}

// Format returns the canonical form of src, or a parse failure when src is
// not valid JSON.
func (f *Formatter) Format(src string) (string, error) {
	if strings.TrimSpace(src) == "" || !gjson.Valid(src) {
		return "", errors.Wrap(errors.ErrParseFailure, "invalid JSON document")
	}
	return string(pretty.PrettyOptions([]byte(src), f.opts)), nil
}
