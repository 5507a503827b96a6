package vfs

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/fmtls/internal/text"
)

// ContentChange is one edit delivered in a didChange notification.
// A nil Range replaces the entire document (full sync); otherwise Text is
// spliced into the addressed UTF-16 coordinate span.
type ContentChange struct {
	Range *protocol.Range `json:"range"`
	Text  string          `json:"text"`
}

// Document is the versioned in-memory buffer for one open file. A Document
// is owned exclusively by its VFS entry and must only be touched inside
// WithDocument or ModifyDocument callbacks.
type Document struct {
	uri     string
	version protocol.Integer
	text    string
}

// URI returns the document's identifying URI.
func (d *Document) URI() string {
	return d.uri
}

// Version returns the current document version.
func (d *Document) Version() protocol.Integer {
	return d.version
}

// Text returns the current document contents.
func (d *Document) Text() string {
	return d.text
}

// SetVersion records a new version. Version advancement is a policy decision
// owned by the protocol handler, not the document: ApplyChanges never calls
// this.
func (d *Document) SetVersion(v protocol.Integer) {
	d.version = v
}

// ApplyChanges applies the changes strictly in list order.
func (d *Document) ApplyChanges(changes []ContentChange) {
	for _, change := range changes {
		if change.Range == nil {
			d.text = change.Text
			continue
		}
		start := text.OffsetForPosition(d.text, change.Range.Start)
		end := text.OffsetForPosition(d.text, change.Range.End)
		if end < start {
			start, end = end, start
		}
		d.text = d.text[:start] + change.Text + d.text[end:]
	}
}
