// Package server implements the fmtls language server: the protocol state
// machine, the framed JSON-RPC transport, and the event loop that ties them
// to a document registry and an external formatter.
package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/fmtls/errors"
	"github.com/teranos/fmtls/format"
	"github.com/teranos/fmtls/logger"
	"github.com/teranos/fmtls/vfs"
)

// Driver runs the cooperative event loop over one connection. Messages are
// read and dispatched strictly one at a time: the version-ordering checks in
// the backend assume notifications for a URI arrive in client-send order.
type Driver struct {
	conn    *Conn
	backend *Backend
	flag    *ShutdownFlag
	logger  *zap.SugaredLogger
}

// NewDriver wires a driver to an established connection and backend.
func NewDriver(conn *Conn, backend *Backend, flag *ShutdownFlag, log *zap.SugaredLogger) *Driver {
	return &Driver{
		conn:    conn,
		backend: backend,
		flag:    flag,
		logger:  log,
	}
}

// Run serves the connection until the input stream closes, the client sends
// exit, or the backend reports a fatal protocol violation. It then reads
// the shutdown flag exactly once and reports true for a clean shutdown.
func (d *Driver) Run() bool {
	for {
		msg, err := d.conn.Read()
		if err != nil {
			if !errors.IsAny(err, io.EOF, io.ErrUnexpectedEOF) {
				d.logger.Errorw("Failed to read message", logger.FieldError, err)
			}
			break
		}
		if !d.dispatch(msg) {
			break
		}
	}

	clean := d.flag.Value()
	signal := "abnormal"
	if clean {
		signal = "clean"
	}
	d.logger.Infow("Event loop ended", logger.FieldExitSignal, signal)
	return clean
}

// dispatch handles one message, returning false to end the event loop.
func (d *Driver) dispatch(msg *Message) bool {
	switch msg.Method {
	case MethodInitialize:
		var params protocol.InitializeParams
		if !d.decodeParams(msg, &params) {
			return true
		}
		result, err := d.backend.Initialize(&params)
		if err != nil {
			d.replyError(msg, codeInternalError, err)
			return true
		}
		d.reply(msg, result)

	case MethodInitialized:
		d.logger.Debugw("Client initialized")

	case MethodShutdown:
		if err := d.backend.Shutdown(); err != nil {
			d.replyError(msg, codeInternalError, err)
			return true
		}
		d.reply(msg, nil)

	case MethodExit:
		d.logger.Debugw("Exit notification received")
		return false

	case MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if !d.decodeParams(msg, &params) {
			return true
		}
		d.backend.DidOpen(&params)

	case MethodTextDocumentDidChange:
		var params DidChangeParams
		if !d.decodeParams(msg, &params) {
			return true
		}
		if err := d.backend.DidChange(&params); err != nil {
			if errors.IsProtocolViolation(err) {
				// Termination is never silent: tell the client, then end
				// the loop.
				d.conn.LogMessage(protocol.MessageTypeError,
					fmt.Sprintf("fmtls terminating: %s", err.Error()))
				d.logger.Errorw("Fatal protocol violation", logger.FieldError, err)
				return false
			}
			d.logger.Errorw("didChange failed", logger.FieldError, err)
		}

	case MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if !d.decodeParams(msg, &params) {
			return true
		}
		d.backend.DidClose(&params)

	case MethodTextDocumentFormatting:
		var params protocol.DocumentFormattingParams
		if !d.decodeParams(msg, &params) {
			return true
		}
		edits, err := d.backend.Formatting(&params)
		switch {
		case errors.IsParseFailure(err):
			d.replyError(msg, codeParseError, err)
		case err != nil:
			d.replyError(msg, codeInternalError, err)
		default:
			d.reply(msg, edits)
		}

	default:
		if msg.IsRequest() {
			d.replyError(msg, codeMethodNotFound, errors.Newf("method not supported: %s", msg.Method))
		} else {
			d.logger.Debugw("Ignoring notification", logger.FieldMethod, msg.Method)
		}
	}
	return true
}

// decodeParams unmarshals request params, answering malformed requests with
// a parse error. Returns false when decoding failed.
func (d *Driver) decodeParams(msg *Message, into any) bool {
	if err := json.Unmarshal(msg.Params, into); err != nil {
		d.logger.Errorw("Malformed params",
			logger.FieldMethod, msg.Method,
			logger.FieldError, err,
		)
		if msg.IsRequest() {
			d.replyError(msg, codeParseError, errors.Wrapf(err, "malformed %s params", msg.Method))
		}
		return false
	}
	return true
}

func (d *Driver) reply(msg *Message, result any) {
	if err := d.conn.Reply(msg.ID, result); err != nil {
		d.logger.Errorw("Failed to send response",
			logger.FieldMethod, msg.Method,
			logger.FieldError, err,
		)
	}
}

func (d *Driver) replyError(msg *Message, code int, cause error) {
	if err := d.conn.ReplyError(msg.ID, code, cause.Error()); err != nil {
		d.logger.Errorw("Failed to send error response",
			logger.FieldMethod, msg.Method,
			logger.FieldError, err,
		)
	}
}

// Serve runs the language server over the given streams and returns true if
// the client requested shutdown before the connection ended.
func Serve(in io.Reader, out io.Writer, formatter format.Formatter, log *zap.SugaredLogger) bool {
	sessionLog := log.With(logger.FieldSessionID, uuid.New().String())

	conn := NewConn(in, out)
	flag := NewShutdownFlag()
	backend := NewBackend(vfs.New(), formatter, conn, flag, sessionLog)

	sessionLog.Infow("Language server session starting")
	return NewDriver(conn, backend, flag, sessionLog).Run()
}
