// Package ratelimit provides the self-throttling HTTP transport used by the
// provider adapters.
package ratelimit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var log Logger

// Logger interface defines the logging methods used by the transport.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger sets the logger.
func SetLogger(l Logger) {
	if l != nil {
		log = l
	}
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Transport is an http.RoundTripper that tracks the remaining request quota
// reported by the provider and delays requests once it runs low.
//
// A Transport belongs to exactly one adapter; round trips through it are
// serialised.
type Transport struct {
	base      http.RoundTripper
	header    string
	remaining atomic.Int64
	threshold int64
	cooldown  time.Duration
	wait      WaitFunc
	sem       *semaphore.Weighted
	warn      *rate.Sometimes
}

// Option configures a Transport.
type Option func(*Transport)

// WithBase sets the underlying round tripper. Default: http.DefaultTransport.
func WithBase(rt http.RoundTripper) Option {
	return func(t *Transport) {
		if rt != nil {
			t.base = rt
		}
	}
}

// WithWaitFunc replaces the cooldown wait, mostly for tests.
func WithWaitFunc(w WaitFunc) Option {
	return func(t *Transport) {
		if w != nil {
			t.wait = w
		}
	}
}

// WithCooldown overrides the delay applied when quota is low.
func WithCooldown(d time.Duration) Option {
	return func(t *Transport) {
		t.cooldown = d
	}
}

// NewTransport returns a Transport reading the remaining quota from header.
func NewTransport(header string, opts ...Option) *Transport {
	t := &Transport{
		base:      http.DefaultTransport,
		header:    header,
		threshold: constants.LowQuotaThreshold,
		cooldown:  constants.ThrottleCooldown,
		wait:      sleep,
		sem:       semaphore.NewWeighted(1),
		warn:      &rate.Sometimes{Interval: constants.LowQuotaLogInterval},
	}
	t.remaining.Store(constants.InitialRemainingQuota)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Remaining returns the last known remaining quota.
func (t *Transport) Remaining() int64 {
	return t.remaining.Load()
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for previous request: %w", err)
	}
	defer t.sem.Release(1)

	if remaining := t.remaining.Load(); remaining < t.threshold {
		t.warn.Do(func() {
			log.Warn("request quota low, slowing down", "remaining", remaining, "delay", t.cooldown)
		})
		if err := t.wait(ctx, t.cooldown); err != nil {
			return nil, fmt.Errorf("throttle cooldown interrupted: %w", err)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err //nolint:wrapcheck // transport errors are passed through to http.Client
	}
	t.update(resp.Header)
	return resp, nil
}

// update refreshes the counter from the quota header. A missing or
// unparsable header leaves the counter unchanged.
func (t *Transport) update(h http.Header) {
	for name, values := range h {
		if !strings.EqualFold(name, t.header) || len(values) == 0 {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
		if err != nil {
			log.Debug("ignoring unparsable quota header", "header", name, "value", values[0])
			return
		}
		t.remaining.Store(n)
		log.Debug("quota updated", "remaining", n)
		return
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
