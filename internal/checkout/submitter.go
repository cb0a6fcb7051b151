package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
)

// Payload is the order snapshot handed to submission.
type Payload struct {
	Items          []domain.CartItem     `json:"items"`
	DeliveryOption domain.ShippingOption `json:"deliveryOption"`
	Pricing        domain.OrderPricing   `json:"pricing"`
}

// Submitter performs the asynchronous order-submission step. It may
// reject; the orchestrator surfaces that as a retryable failure.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// SimulatedSubmitter stands in for a real order backend: it waits a fixed
// delay and succeeds. The delay is context-aware so shutdown does not
// hang on it.
type SimulatedSubmitter struct {
	Delay time.Duration
}

func NewSimulatedSubmitter(delay time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: delay}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, _ Payload) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HTTPSubmitter posts the payload to an order endpoint, for deployments
// that point the storefront at a real order API instead of the
// simulated one.
type HTTPSubmitter struct {
	url  string
	http *http.Client
}

func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("post order: unexpected status %d", resp.StatusCode)
	}
	return nil
}
