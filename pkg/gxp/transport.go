package gxp

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

const defaultAddress = "localhost:53953"

// Transport carries connect/disconnect requests to the SOCET GXP workstation
// service. Implementations map transport failures to an error and surface the
// workstation's own reply as an ApiStatus.
type Transport interface {
	Connect(ctx context.Context) (ApiStatus, error)
	Disconnect() error
}

// hello is the handshake sent on connect. The workstation echoes an ack
// carrying its domain status.
type hello struct {
	Client  string `json:"client"`
	Version int    `json:"version"`
}

type helloAck struct {
	ErrorCode int32  `json:"error_code"`
	Error     string `json:"error,omitempty"`
}

// TCPTransport dials the workstation service over TCP and performs a JSON
// handshake. The zero value is not usable; use NewTCPTransport.
type TCPTransport struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
}

// NewTCPTransport creates a transport for the given address. An empty address
// falls back to the GXP_ADDRESS environment variable, then to the default
// local port.
func NewTCPTransport(addr string, timeout time.Duration) *TCPTransport {
	if strings.TrimSpace(addr) == "" {
		addr = os.Getenv("GXP_ADDRESS")
	}
	if strings.TrimSpace(addr) == "" {
		addr = defaultAddress
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &TCPTransport{addr: addr, timeout: timeout}
}

// Connect dials the service and exchanges the handshake. A dial or I/O error
// is a communication failure; a served error code is a domain failure.
func (t *TCPTransport) Connect(ctx context.Context) (ApiStatus, error) {
	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return ApiStatus{}, fmt.Errorf("dial %s: %w", t.addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(t.timeout))
	}

	if err := json.NewEncoder(conn).Encode(hello{Client: "APPL-Tools", Version: 1}); err != nil {
		conn.Close()
		return ApiStatus{}, fmt.Errorf("send hello: %w", err)
	}

	var ack helloAck
	if err := json.NewDecoder(conn).Decode(&ack); err != nil {
		conn.Close()
		return ApiStatus{}, fmt.Errorf("read ack: %w", err)
	}

	_ = conn.SetDeadline(time.Time{})
	t.conn = conn

	return ApiStatus{Code: ack.ErrorCode, Message: ack.Error}, nil
}

// Disconnect closes the session if one is open.
func (t *TCPTransport) Disconnect() error {
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
