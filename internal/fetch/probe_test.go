package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scriptedCheck(t *testing.T, mode ProxyMode, results map[string]error) (*ConnectivityCheck, *[]string) {
	t.Helper()
	var probes []string
	c := NewConnectivityCheck(mode, "", zap.NewNop())
	c.probe = func(_ context.Context, proxyURL string) (string, error) {
		probes = append(probes, proxyURL)
		if err := results[proxyURL]; err != nil {
			return "", err
		}
		return "203.0.113.7", nil
	}
	return c, &probes
}

func TestConnectivityCheckKeepsModeOnSuccess(t *testing.T) {
	t.Parallel()
	c, probes := scriptedCheck(t, ProxyTor, nil)

	mode, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, ProxyTor, mode)
	require.Equal(t, []string{DefaultTorProxyURL}, *probes)
}

func TestConnectivityCheckTorFallsBackToDirect(t *testing.T) {
	t.Parallel()
	c, probes := scriptedCheck(t, ProxyTor, map[string]error{
		DefaultTorProxyURL: errors.New("socks refused"),
	})

	mode, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, ProxyNone, mode)
	require.Equal(t, []string{DefaultTorProxyURL, ""}, *probes)
}

func TestConnectivityCheckTotalFailureIsFatal(t *testing.T) {
	t.Parallel()
	c, probes := scriptedCheck(t, ProxyTor, map[string]error{
		DefaultTorProxyURL: errors.New("socks refused"),
		"":                 errors.New("no route"),
	})

	_, err := c.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no route")
	require.Len(t, *probes, 2)
}

func TestConnectivityCheckDirectFailureHasNoFallback(t *testing.T) {
	t.Parallel()
	c, probes := scriptedCheck(t, ProxyNone, map[string]error{
		"": errors.New("no route"),
	})

	_, err := c.Run(context.Background())
	require.Error(t, err)
	require.Len(t, *probes, 1)
}
