// Package fetch retrieves marketplace result pages through colly with
// browser-like headers, rate limiting, identity rotation and retries.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	collyproxy "github.com/gocolly/colly/v2/proxy"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/ingest"
	"github.com/gpuradar/gpuradar/internal/metrics"
)

// Limiter gates request starts.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Config controls fetch behavior.
type Config struct {
	UserAgents []string
	Timeout    time.Duration

	// HumanDelayMin/Max bound the random pre-request pause that keeps
	// the request cadence off machine rhythm.
	HumanDelayMin time.Duration
	HumanDelayMax time.Duration

	ProxyMode ProxyMode
	// ProxyURLs configures ProxyList mode, or overrides the SOCKS
	// endpoint in ProxyTor mode.
	ProxyURLs []string

	Retry RetryPolicy
}

// DefaultConfig returns the cadence the marketplace tolerates.
func DefaultConfig() Config {
	return Config{
		UserAgents:    DefaultUserAgents,
		Timeout:       30 * time.Second,
		HumanDelayMin: 2 * time.Second,
		HumanDelayMax: 5 * time.Second,
		ProxyMode:     ProxyNone,
		Retry:         DefaultRetryPolicy(),
	}
}

// Fetcher implements ingest.Fetcher on top of a colly collector. The
// base collector is built once; every request runs on a clone with a
// fresh browser identity.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
	limiter       Limiter
	rotator       Rotator
	logger        *zap.Logger
	rng           *rand.Rand
	sleep         SleepFunc
}

// New builds a Fetcher. The limiter paces all requests; the rotator is
// consulted when the target starts refusing us.
func New(cfg Config, limiter Limiter, rotator Rotator, logger *zap.Logger) (*Fetcher, error) {
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = DefaultUserAgents
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if rotator == nil {
		rotator = NopRotator{}
	}

	// colly v2.1.0's Async option ignores its argument and always enables
	// async mode; rely on the synchronous default instead.
	c := colly.NewCollector(colly.AllowURLRevisit())
	c.WithTransport(newHTTPTransport())
	c.SetRequestTimeout(cfg.Timeout)

	if err := configureProxy(c, cfg); err != nil {
		return nil, err
	}

	return &Fetcher{
		cfg:           cfg,
		baseCollector: c,
		limiter:       limiter,
		rotator:       rotator,
		logger:        logger,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:         sleepWithContext,
	}, nil
}

func configureProxy(c *colly.Collector, cfg Config) error {
	var urls []string
	switch cfg.ProxyMode {
	case ProxyNone, "":
		return nil
	case ProxyTor:
		urls = cfg.ProxyURLs
		if len(urls) == 0 {
			urls = []string{DefaultTorProxyURL}
		}
	case ProxyList:
		if len(cfg.ProxyURLs) == 0 {
			return errors.New("proxy mode list requires at least one proxy url")
		}
		urls = cfg.ProxyURLs
	default:
		return fmt.Errorf("unknown proxy mode %q", cfg.ProxyMode)
	}
	switcher, err := collyproxy.RoundRobinProxySwitcher(urls...)
	if err != nil {
		return fmt.Errorf("proxy switcher: %w", err)
	}
	c.SetProxyFunc(switcher)
	return nil
}

// Fetch retrieves one page, retrying per policy. Every attempt waits
// for the rate limiter and inserts a human-scale pause first: a retry
// is one more request against the target and counts against the same
// call budget. A 403 or 429 triggers an identity rotation before the
// next attempt.
func (f *Fetcher) Fetch(ctx context.Context, url string) (ingest.Response, error) {
	var (
		lastErr error
		attempt int
	)
	for ; ; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return ingest.Response{}, err
		}
		if err := f.humanDelay(ctx); err != nil {
			return ingest.Response{}, err
		}

		resp, err := f.fetchOnce(ctx, url)
		if err == nil {
			metrics.ObserveFetch(resp.StatusCode, resp.Duration)
			return resp, nil
		}
		lastErr = err

		if !f.cfg.Retry.ShouldRetry(err, attempt) {
			break
		}
		metrics.CountFetchRetry()

		var fe *Error
		if errors.As(err, &fe) && fe.Blocked() {
			f.logger.Warn("blocked by target, rotating identity",
				zap.String("url", url),
				zap.Int("status", fe.StatusCode))
			if rerr := f.rotator.Rotate(ctx); rerr != nil {
				f.logger.Warn("identity rotation failed", zap.Error(rerr))
			}
		}

		backoff := f.cfg.Retry.Backoff(attempt)
		f.logger.Debug("retrying fetch",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff))
		if serr := f.sleep(ctx, backoff); serr != nil {
			return ingest.Response{}, serr
		}
	}

	var fe *Error
	if errors.As(lastErr, &fe) {
		fe.Attempts = attempt + 1
		metrics.ObserveFetch(fe.StatusCode, 0)
	}
	return ingest.Response{}, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (ingest.Response, error) {
	var (
		result   ingest.Response
		status   int
		fetchErr error
	)
	start := time.Now()

	collector := f.baseCollector.Clone()
	identity := buildHeaders(f.rng, f.cfg.UserAgents)
	collector.UserAgent = identity.userAgent

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range identity.headers {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		result = ingest.Response{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    r.Headers.Clone(),
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return ingest.Response{}, ctx.Err()
	case err := <-done:
		if err == nil && fetchErr == nil {
			return result, nil
		}
		if fetchErr == nil {
			fetchErr = err
		}
		return ingest.Response{}, &Error{
			URL:        url,
			StatusCode: status,
			Attempts:   1,
			Err:        fetchErr,
		}
	}
}

func (f *Fetcher) humanDelay(ctx context.Context) error {
	if f.cfg.HumanDelayMax <= 0 {
		return nil
	}
	span := f.cfg.HumanDelayMax - f.cfg.HumanDelayMin
	d := f.cfg.HumanDelayMin
	if span > 0 {
		d += time.Duration(f.rng.Int63n(int64(span)))
	}
	f.logger.Debug("human delay", zap.Duration("pause", d))
	return f.sleep(ctx, d)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
