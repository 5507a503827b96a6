package server

import (
	"fmt"

	"go.uber.org/zap"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/fmtls/errors"
	"github.com/teranos/fmtls/format"
	"github.com/teranos/fmtls/internal/util"
	"github.com/teranos/fmtls/logger"
	"github.com/teranos/fmtls/version"
	"github.com/teranos/fmtls/vfs"
)

// Client is the server→client notification channel the backend logs
// diagnostic conditions through.
type Client interface {
	LogMessage(typ protocol.MessageType, message string)
}

// DidChangeParams mirrors the textDocument/didChange payload. The version
// field is kept nullable: null is only legal from server to client, so
// receiving it here is a protocol violation the backend must detect rather
// than silently zero out.
type DidChangeParams struct {
	TextDocument   VersionedTextDocument `json:"textDocument"`
	ContentChanges []vfs.ContentChange   `json:"contentChanges"`
}

// VersionedTextDocument identifies a document together with the client's
// claimed version.
type VersionedTextDocument struct {
	URI     protocol.DocumentUri `json:"uri"`
	Version *protocol.Integer    `json:"version"`
}

// Backend is the protocol state machine: it maps inbound events to registry
// operations, enforces the version-ordering policy, and serves formatting
// requests by combining registry reads with the external formatter.
type Backend struct {
	vfs         *vfs.VFS
	formatter   format.Formatter
	client      Client
	didShutdown *ShutdownFlag
	logger      *zap.SugaredLogger
}

// NewBackend wires the protocol handler.
func NewBackend(registry *vfs.VFS, formatter format.Formatter, client Client, didShutdown *ShutdownFlag, log *zap.SugaredLogger) *Backend {
	return &Backend{
		vfs:         registry,
		formatter:   formatter,
		client:      client,
		didShutdown: didShutdown,
		logger:      log,
	}
}

// Initialize advertises document formatting and nothing else.
func (b *Backend) Initialize(params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	b.logger.Infow("Client initializing",
		"client", params.ClientInfo,
		"capabilities", "formatting",
	)

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			DocumentFormattingProvider: true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "fmtls",
			Version: util.Ptr(version.Version),
		},
	}, nil
}

// DidOpen registers the document at version 0, replacing any prior entry
// for the URI.
func (b *Backend) DidOpen(params *protocol.DidOpenTextDocumentParams) {
	uri := string(params.TextDocument.URI)

	if b.vfs.WithDocument(uri, func(*vfs.Document) {}) {
		// Reopen discards the prior document without version comparison.
		b.logger.Debugw("Reopening already-open document", logger.FieldURI, uri)
	}
	b.vfs.CreateDocument(uri, params.TextDocument.Text)

	b.logger.Debugw("Document opened",
		logger.FieldURI, uri,
		logger.FieldLength, len(params.TextDocument.Text),
	)
}

// DidChange applies the client's edits subject to the version-ordering
// policy. A returned error wrapping ErrProtocolViolation is fatal: the
// caller must end the event loop, because continuing risks silently
// diverging from the client's true document content.
func (b *Backend) DidChange(params *DidChangeParams) error {
	uri := string(params.TextDocument.URI)

	var docVersion protocol.Integer
	found := b.vfs.WithDocument(uri, func(d *vfs.Document) {
		docVersion = d.Version()
	})
	if !found {
		// Document is not currently opened, so we can't update changes to it.
		// Log warning to the client and do nothing.
		message := fmt.Sprintf("Received didChange event for unopened document.\n\tDocument: %s", uri)
		b.client.LogMessage(protocol.MessageTypeWarning, message)
		b.logger.Warnw("didChange for unopened document", logger.FieldURI, uri)
		return nil
	}

	if params.TextDocument.Version == nil {
		// While the field is nullable on the wire, null is only valid when
		// sent from server to client. Recovering risks corrupting the
		// document, so report to the client and terminate.
		message := fmt.Sprintf("Received version null in didChange notification.\n\tDocument: %s", uri)
		b.client.LogMessage(protocol.MessageTypeError, message)
		return errors.Wrapf(errors.ErrProtocolViolation, "null version in didChange for %s", uri)
	}

	clientVersion := *params.TextDocument.Version
	switch {
	case docVersion == clientVersion:
		b.vfs.ModifyDocument(uri, func(d *vfs.Document) {
			d.ApplyChanges(params.ContentChanges)
			d.SetVersion(clientVersion + 1)
		})
		b.logger.Debugw("Document changed",
			logger.FieldURI, uri,
			logger.FieldVersion, clientVersion+1,
			logger.FieldCount, len(params.ContentChanges),
		)
		return nil

	case docVersion < clientVersion:
		// The client is ahead of us: intermediate edits never arrived.
		message := fmt.Sprintf(
			"Text synchronization failed.\n\tDocument: %s\n\tServer version: %d\n\tClient version: %d",
			uri, docVersion, clientVersion,
		)
		b.client.LogMessage(protocol.MessageTypeError, message)
		return errors.Wrapf(errors.ErrProtocolViolation,
			"text synchronization failed for %s: server at %d, client at %d",
			uri, docVersion, clientVersion)

	default:
		// We have a newer version than the one being sent, so ignore the
		// changes. Stale or duplicate notification; skipping is idempotent.
		message := fmt.Sprintf(
			"Skipping didChange - version on server newer.\n\tDocument: %s\n\tServer version: %d\n\tClient version: %d",
			uri, docVersion, clientVersion,
		)
		b.client.LogMessage(protocol.MessageTypeInfo, message)
		b.logger.Infow("Skipping stale didChange",
			logger.FieldURI, uri,
			logger.FieldServerVersion, docVersion,
			logger.FieldClientVersion, clientVersion,
		)
		return nil
	}
}

// DidClose evicts the document. Never fails, including for unopened URIs.
func (b *Backend) DidClose(params *protocol.DidCloseTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	b.vfs.EvictDocument(uri)
	b.logger.Debugw("Document closed", logger.FieldURI, uri)
}

// Formatting serves textDocument/formatting from the registry (or disk for
// unopened files) through the formatter boundary. Parse failures and I/O
// errors are surfaced to the caller; protocol state is never affected.
func (b *Backend) Formatting(params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)

	contents, err := b.vfs.DocumentContents(uri)
	if err != nil {
		b.logger.Errorw("Failed to load document contents",
			logger.FieldURI, uri,
			logger.FieldError, err,
		)
		return nil, err
	}

	edits, err := format.DocumentEdits(b.formatter, contents)
	if err != nil {
		b.logger.Warnw("Formatting rejected document",
			logger.FieldURI, uri,
			logger.FieldError, err,
		)
		return nil, err
	}

	b.logger.Debugw("Formatted document",
		logger.FieldURI, uri,
		logger.FieldCount, len(edits),
	)
	return edits, nil
}

// Shutdown attempts to set the shutdown flag without blocking.
func (b *Backend) Shutdown() error {
	if err := b.didShutdown.TrySet(); err != nil {
		b.logger.Errorw("Shutdown request failed", logger.FieldError, err)
		return err
	}
	b.logger.Infow("Shutdown requested")
	return nil
}
