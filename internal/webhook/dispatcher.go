// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ErrQueueFull is returned when an event cannot be queued without blocking.
var ErrQueueFull = errors.New("webhook queue full")

// Config holds dispatcher configuration.
type Config struct {
	URL            string
	Secret         string // signs payloads when set
	Workers        int
	QueueSize      int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Client         *http.Client
}

// DefaultConfig returns the dispatcher defaults for url.
func DefaultConfig(url, secret string) Config {
	return Config{
		URL:            url,
		Secret:         secret,
		Workers:        2,
		QueueSize:      100,
		MaxAttempts:    MaxAttempts,
		InitialBackoff: InitialBackoff,
		MaxBackoff:     MaxBackoff,
	}
}

// Dispatcher queues events and delivers them from worker goroutines.
type Dispatcher struct {
	cfg     Config
	client  *http.Client
	logger  *slog.Logger
	queue   chan *Event
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
}

// NewDispatcher creates a dispatcher. Zero config fields take defaults.
func NewDispatcher(logger *slog.Logger, cfg Config) *Dispatcher {
	def := DefaultConfig(cfg.URL, cfg.Secret)
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	client := cfg.Client
	if client == nil {
		client = httpClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		cfg:    cfg,
		client: client,
		logger: logger,
		queue:  make(chan *Event, cfg.QueueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting webhook dispatcher", "workers", d.cfg.Workers)
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop signals the workers and waits for them to exit. Queued events
// that were not picked up are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped", "dropped", len(d.queue))
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("webhook worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

// Dispatch queues event without blocking.
func (d *Dispatcher) Dispatch(event *Event) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return errors.New("webhook dispatcher not running")
	}

	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("webhook queue full, dropping event", "event", event.Type)
		return ErrQueueFull
	}
}

// DispatchEvent builds and queues an event. Failures are logged, never
// returned, so callers can fire and forget.
func (d *Dispatcher) DispatchEvent(_ context.Context, eventType string, data any) {
	if err := d.Dispatch(NewEvent(eventType, data)); err != nil {
		d.logger.Warn("webhook event not queued", "event", eventType, "error", err)
	}
}

// encode builds the request body for event.
func encode(event *Event) ([]byte, error) {
	body, err := json.Marshal(payload{Content: event.Message(), Event: event})
	if err != nil {
		return nil, fmt.Errorf("encoding webhook payload: %w", err)
	}
	return body, nil
}

// GenerateSignature returns the hex HMAC-SHA256 of payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches payload.
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(GenerateSignature(payload, secret)), []byte(signature))
}
