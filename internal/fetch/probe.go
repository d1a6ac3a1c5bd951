package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const ipCheckURL = "https://api.ipify.org?format=json"

type ipResponse struct {
	IP string `json:"ip"`
}

// Prober verifies outbound connectivity and reports the exit IP, so a
// run can confirm its Tor or proxy routing before touching the target.
type Prober struct {
	client *resty.Client
	logger *zap.Logger
}

// NewProber builds a prober. proxyURL may be empty for a direct check.
func NewProber(proxyURL string, logger *zap.Logger) *Prober {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &Prober{client: client, logger: logger}
}

// ConnectivityCheck verifies outbound reachability before a run starts.
// In Tor mode a failed probe is retried once directly; when the direct
// probe succeeds the run proceeds without the proxy rather than not at
// all. Total failure is fatal to the run.
type ConnectivityCheck struct {
	Mode     ProxyMode
	ProxyURL string

	logger *zap.Logger
	probe  func(ctx context.Context, proxyURL string) (string, error)
}

// NewConnectivityCheck builds a check for the configured proxy mode.
// proxyURL may be empty; Tor mode then probes through the default
// SOCKS endpoint.
func NewConnectivityCheck(mode ProxyMode, proxyURL string, logger *zap.Logger) *ConnectivityCheck {
	if mode == ProxyTor && proxyURL == "" {
		proxyURL = DefaultTorProxyURL
	}
	return &ConnectivityCheck{
		Mode:     mode,
		ProxyURL: proxyURL,
		logger:   logger,
		probe: func(ctx context.Context, proxyURL string) (string, error) {
			return NewProber(proxyURL, logger).Check(ctx)
		},
	}
}

// Run probes the exit path and returns the proxy mode the run should
// proceed with, which differs from the configured one only when the
// Tor probe failed but the direct fallback succeeded.
func (c *ConnectivityCheck) Run(ctx context.Context) (ProxyMode, error) {
	proxyURL := ""
	if c.Mode == ProxyTor {
		proxyURL = c.ProxyURL
	}
	_, probeErr := c.probe(ctx, proxyURL)
	if probeErr == nil {
		return c.Mode, nil
	}
	if c.Mode != ProxyTor {
		return c.Mode, fmt.Errorf("connectivity check: %w", probeErr)
	}

	c.logger.Warn("tor connectivity failed, probing direct", zap.Error(probeErr))
	if _, err := c.probe(ctx, ""); err != nil {
		return c.Mode, fmt.Errorf("connectivity check: tor: %v; direct: %w", probeErr, err)
	}
	c.logger.Warn("proceeding without tor, direct connectivity confirmed")
	return ProxyNone, nil
}

// Check returns the current exit IP.
func (p *Prober) Check(ctx context.Context) (string, error) {
	var out ipResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(ipCheckURL)
	if err != nil {
		return "", fmt.Errorf("ip check: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ip check: status %d", resp.StatusCode())
	}
	p.logger.Info("connectivity ok", zap.String("exit_ip", out.IP))
	return out.IP, nil
}
