// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Delivery defaults.
const (
	MaxAttempts    = 5
	InitialBackoff = 5 * time.Second
	MaxBackoff     = 5 * time.Minute
	RequestTimeout = 15 * time.Second
	MaxResponseLen = 4 * 1024
	UserAgent      = "NGL-Guild/1.0"
)

// DeliveryResult is the outcome of a single attempt.
type DeliveryResult struct {
	Success     bool
	StatusCode  int
	Error       error
	ShouldRetry bool
}

var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

// deliver posts event, retrying with exponential backoff until it
// succeeds, fails permanently or the dispatcher stops.
func (d *Dispatcher) deliver(ctx context.Context, event *Event) {
	body, err := encode(event)
	if err != nil {
		d.logger.Error("webhook payload encoding failed", "event", event.Type, "error", err)
		return
	}

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		result := d.attemptDelivery(ctx, event.Type, body)
		if result.Success {
			d.logger.Debug("webhook delivered", "event", event.Type, "status", result.StatusCode, "attempt", attempt)
			return
		}
		if !result.ShouldRetry || attempt == d.cfg.MaxAttempts {
			d.logger.Warn("webhook delivery failed",
				"event", event.Type,
				"attempt", attempt,
				"status", result.StatusCode,
				"error", result.Error)
			return
		}

		backoff := d.backoff(attempt)
		d.logger.Info("webhook delivery will retry", "event", event.Type, "attempt", attempt, "backoff", backoff.String())
		select {
		case <-time.After(backoff):
		case <-d.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// attemptDelivery performs one HTTP POST.
func (d *Dispatcher) attemptDelivery(ctx context.Context, eventType string, body []byte) DeliveryResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{Error: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-NGL-Event", eventType)
	if d.cfg.Secret != "" {
		req.Header.Set("X-NGL-Signature", GenerateSignature(body, d.cfg.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return DeliveryResult{Error: fmt.Errorf("request failed: %w", err), ShouldRetry: true}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseLen))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return DeliveryResult{Success: true, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return DeliveryResult{
			StatusCode:  resp.StatusCode,
			Error:       fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			ShouldRetry: resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests,
		}
	}
	return DeliveryResult{
		StatusCode:  resp.StatusCode,
		Error:       fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		ShouldRetry: true,
	}
}

// backoff returns InitialBackoff * 2^(attempt-1), capped at MaxBackoff.
func (d *Dispatcher) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}
	b := time.Duration(float64(d.cfg.InitialBackoff) * math.Pow(2, float64(attempt-1)))
	if b > d.cfg.MaxBackoff {
		b = d.cfg.MaxBackoff
	}
	return b
}
