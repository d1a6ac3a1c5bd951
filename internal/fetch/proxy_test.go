package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeControlConn struct {
	commands []string
	fail     bool
	closed   bool
}

func (c *fakeControlConn) Cmd(format string, args ...any) (uint, error) {
	c.commands = append(c.commands, format)
	return 0, nil
}

func (c *fakeControlConn) ReadResponse(expectCode int) (int, string, error) {
	if c.fail {
		return 515, "authentication failed", errors.New("authentication failed")
	}
	return 250, "OK", nil
}

func (c *fakeControlConn) Close() error {
	c.closed = true
	return nil
}

func newTestRotator(dial func(addr string) (controlConn, error)) *TorRotator {
	r := NewTorRotator(zap.NewNop())
	r.SettleDelay = 0
	r.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	r.dial = dial
	return r
}

func TestTorRotatorSignalsNewnym(t *testing.T) {
	t.Parallel()
	conn := &fakeControlConn{}
	var dialed []string
	r := newTestRotator(func(addr string) (controlConn, error) {
		dialed = append(dialed, addr)
		return conn, nil
	})

	require.NoError(t, r.Rotate(context.Background()))
	require.Equal(t, []string{"127.0.0.1:9051"}, dialed)
	require.Equal(t, []string{"AUTHENTICATE", "SIGNAL NEWNYM"}, conn.commands)
	require.True(t, conn.closed)
}

func TestTorRotatorFallsBackToSecondPort(t *testing.T) {
	t.Parallel()
	var dialed []string
	r := newTestRotator(func(addr string) (controlConn, error) {
		dialed = append(dialed, addr)
		if addr == "127.0.0.1:9051" {
			return nil, errors.New("connection refused")
		}
		return &fakeControlConn{}, nil
	})

	require.NoError(t, r.Rotate(context.Background()))
	require.Equal(t, []string{"127.0.0.1:9051", "127.0.0.1:9151"}, dialed)
}

func TestTorRotatorAllPortsFail(t *testing.T) {
	t.Parallel()
	r := newTestRotator(func(addr string) (controlConn, error) {
		return nil, errors.New("connection refused")
	})

	err := r.Rotate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "NEWNYM")
}
