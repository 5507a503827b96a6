package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/teranos/fmtls/errors"
	"github.com/teranos/fmtls/logger"
)

// Message is a JSON-RPC 2.0 message. It represents a request, response, or
// notification depending on which fields are populated:
//   - Request: ID, Method, and Params are set
//   - Response: ID and either Result or Error are set
//   - Notification: Method is set (no ID)
//
// ID is kept raw so responses echo back whatever the client sent (number or
// string).
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// IsRequest reports whether the message expects a response.
func (m *Message) IsRequest() bool {
	return len(m.ID) > 0
}

// ResponseError is the error member of a JSON-RPC response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Conn frames JSON-RPC messages over a single reader/writer pair using the
// LSP base protocol (Content-Length headers). Reads are only ever issued by
// the driver loop; writes are serialized by a mutex so responses and
// server-initiated notifications never interleave mid-frame.
type Conn struct {
	reader *bufio.Reader

	writeMu sync.Mutex
	writer  io.Writer
}

// NewConn wraps the given streams.
func NewConn(in io.Reader, out io.Writer) *Conn {
	return &Conn{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// Read blocks until one complete framed message arrives. Returns io.EOF
// when the input stream closes.
func (c *Conn) Read() (*Message, error) {
	tp := textproto.NewReader(c.reader)

	contentLength := -1
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return nil, err
		}
		if line == "" { // end of headers
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, errors.Wrap(err, "invalid Content-Length header")
			}
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(c.reader, body); err != nil {
		return nil, err
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, errors.Wrap(err, "malformed JSON-RPC message")
	}
	return &msg, nil
}

// Write frames and sends one message.
func (c *Conn) Write(msg *Message) error {
	msg.JSONRPC = "2.0"
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal message")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := fmt.Fprintf(c.writer, "Content-Length: %d\r\n\r\n", len(body)); err != nil {
		return errors.Wrap(err, "failed to write frame header")
	}
	if _, err := c.writer.Write(body); err != nil {
		return errors.Wrap(err, "failed to write frame body")
	}
	return nil
}

// Reply sends a successful response for the given request ID.
func (c *Conn) Reply(id json.RawMessage, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "failed to marshal result")
	}
	return c.Write(&Message{ID: id, Result: raw})
}

// ReplyError sends an error response for the given request ID.
func (c *Conn) ReplyError(id json.RawMessage, code int, message string) error {
	return c.Write(&Message{ID: id, Error: &ResponseError{Code: code, Message: message}})
}

// Notify sends a server-initiated notification.
func (c *Conn) Notify(method string, params any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification params")
	}
	return c.Write(&Message{Method: method, Params: raw})
}

// LogMessage sends a window/logMessage notification to the client. Conn is
// the Client implementation handed to the Backend; send failures are logged
// locally and otherwise swallowed, since there is nowhere else to report
// them.
func (c *Conn) LogMessage(typ protocol.MessageType, message string) {
	err := c.Notify(MethodWindowLogMessage, protocol.LogMessageParams{
		Type:    typ,
		Message: message,
	})
	if err != nil {
		logger.Errorw("Failed to send log message to client", logger.FieldError, err)
	}
}
