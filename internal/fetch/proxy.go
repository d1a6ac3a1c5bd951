package fetch

import (
	"context"
	"fmt"
	"net/textproto"
	"time"

	"go.uber.org/zap"
)

// ProxyMode selects how outbound requests are routed.
type ProxyMode string

const (
	// ProxyNone sends requests directly.
	ProxyNone ProxyMode = "none"
	// ProxyTor routes through a local Tor SOCKS proxy and rotates
	// circuits via the control port when blocked.
	ProxyTor ProxyMode = "tor"
	// ProxyList round-robins over a configured proxy URL list.
	ProxyList ProxyMode = "list"
)

// DefaultTorProxyURL is the standard local Tor SOCKS endpoint.
const DefaultTorProxyURL = "socks5://127.0.0.1:9050"

// DefaultTorControlPorts are tried in order when requesting a new
// circuit: 9051 is the daemon default, 9151 the browser bundle.
var DefaultTorControlPorts = []int{9051, 9151}

// Rotator swaps the outbound identity after the target blocks us.
type Rotator interface {
	Rotate(ctx context.Context) error
}

// NopRotator is used when no identity rotation is possible; being
// blocked then only backs off and retries.
type NopRotator struct{}

func (NopRotator) Rotate(context.Context) error { return nil }

// TorRotator requests a fresh circuit over the Tor control protocol.
type TorRotator struct {
	ControlPorts []int
	// SettleDelay is how long to wait after NEWNYM for the new
	// circuit to establish.
	SettleDelay time.Duration

	logger *zap.Logger
	sleep  SleepFunc
	dial   func(addr string) (controlConn, error)
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type controlConn interface {
	Cmd(format string, args ...any) (id uint, err error)
	ReadResponse(expectCode int) (code int, message string, err error)
	Close() error
}

type textprotoConn struct {
	conn *textproto.Conn
}

func (c *textprotoConn) Cmd(format string, args ...any) (uint, error) {
	return c.conn.Cmd(format, args...)
}

func (c *textprotoConn) ReadResponse(expectCode int) (int, string, error) {
	return c.conn.ReadResponse(expectCode)
}

func (c *textprotoConn) Close() error { return c.conn.Close() }

func dialControl(addr string) (controlConn, error) {
	conn, err := textproto.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &textprotoConn{conn: conn}, nil
}

// NewTorRotator builds a rotator against the local Tor control ports.
func NewTorRotator(logger *zap.Logger) *TorRotator {
	return &TorRotator{
		ControlPorts: DefaultTorControlPorts,
		SettleDelay:  10 * time.Second,
		logger:       logger,
		sleep:        sleepWithContext,
		dial:         dialControl,
	}
}

// Rotate signals NEWNYM on the first control port that accepts it, then
// waits for the circuit to settle. All ports failing is an error: the
// caller keeps its current, already-blocked identity.
func (r *TorRotator) Rotate(ctx context.Context) error {
	for _, port := range r.ControlPorts {
		if err := ctx.Err(); err != nil {
			return err
		}
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		if err := r.newnym(addr); err != nil {
			r.logger.Debug("tor control port refused",
				zap.String("addr", addr), zap.Error(err))
			continue
		}
		r.logger.Info("tor circuit rotated", zap.Int("control_port", port))
		return r.sleep(ctx, r.SettleDelay)
	}
	return fmt.Errorf("no tor control port accepted NEWNYM (tried %v)", r.ControlPorts)
}

func (r *TorRotator) newnym(addr string) error {
	conn, err := r.dial(addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Cmd("AUTHENTICATE"); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if _, _, err := conn.ReadResponse(250); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if _, err := conn.Cmd("SIGNAL NEWNYM"); err != nil {
		return fmt.Errorf("signal newnym: %w", err)
	}
	if _, _, err := conn.ReadResponse(250); err != nil {
		return fmt.Errorf("signal newnym: %w", err)
	}
	return nil
}
