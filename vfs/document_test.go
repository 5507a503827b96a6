package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func rangeAt(startLine, startChar, endLine, endChar protocol.UInteger) *protocol.Range {
	return &protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: endLine, Character: endChar},
	}
}

func TestApplyChanges_FullReplacement(t *testing.T) {
	doc := &Document{uri: "file:///a.json", text: "old"}

	doc.ApplyChanges([]ContentChange{{Text: "new contents"}})

	assert.Equal(t, "new contents", doc.Text())
	assert.Equal(t, protocol.Integer(0), doc.Version(), "ApplyChanges must not advance version")
}

func TestApplyChanges_RangedSplice(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		changes []ContentChange
		want    string
	}{
		{
			name:    "replace within line",
			initial: "hello world",
			changes: []ContentChange{{Range: rangeAt(0, 6, 0, 11), Text: "there"}},
			want:    "hello there",
		},
		{
			name:    "insert at start",
			initial: "world",
			changes: []ContentChange{{Range: rangeAt(0, 0, 0, 0), Text: "hello "}},
			want:    "hello world",
		},
		{
			name:    "delete across lines",
			initial: "one\ntwo\nthree",
			changes: []ContentChange{{Range: rangeAt(0, 3, 2, 0), Text: ""}},
			want:    "onethree",
		},
		{
			name:    "ordered application",
			initial: "abc",
			changes: []ContentChange{
				{Range: rangeAt(0, 0, 0, 1), Text: "x"},
				{Range: rangeAt(0, 2, 0, 3), Text: "y"},
			},
			want: "xby",
		},
		{
			name:    "full then ranged",
			initial: "ignored",
			changes: []ContentChange{
				{Text: "fresh text"},
				{Range: rangeAt(0, 0, 0, 5), Text: "stale"},
			},
			want: "stale text",
		},
		{
			name:    "utf16 coordinates after surrogate pair",
			initial: "🙂ab",
			changes: []ContentChange{{Range: rangeAt(0, 2, 0, 3), Text: "x"}},
			want:    "🙂xb",
		},
		{
			name:    "append at end of document",
			initial: "line1\nline2",
			changes: []ContentChange{{Range: rangeAt(1, 5, 1, 5), Text: "!"}},
			want:    "line1\nline2!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{uri: "file:///a.json", text: tt.initial}
			doc.ApplyChanges(tt.changes)
			assert.Equal(t, tt.want, doc.Text())
		})
	}
}

func TestSetVersion(t *testing.T) {
	doc := &Document{uri: "file:///a.json"}
	assert.Equal(t, protocol.Integer(0), doc.Version())

	doc.SetVersion(3)
	assert.Equal(t, protocol.Integer(3), doc.Version())
}
