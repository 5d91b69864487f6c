// Package upstream talks to the recommendation backend.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pathways/internal/config"
	"pathways/internal/metrics"
	"pathways/internal/models"
)

var (
	// ErrRejected is returned when the backend answers without success: true.
	ErrRejected = errors.New("backend reported failure")
	// ErrNoRecommendations is returned when a successful submission carries
	// no recommendations list.
	ErrNoRecommendations = errors.New("response has no recommendations")
)

// maxBodySize bounds how much of a backend response is read.
const maxBodySize = 10 << 20

// Error is a transport or decode failure talking to the backend.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a transport or decode failure
// rather than a failure reported by the backend.
func IsTransportError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}

// Client calls the backend's submit and save endpoints.
type Client struct {
	submitURL string
	saveURL   string
	client    *http.Client
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		submitURL: cfg.UpstreamEndpoint(cfg.UpstreamSubmitPath),
		saveURL:   cfg.UpstreamEndpoint(cfg.UpstreamSavePath),
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// SubmitPathway sends the questionnaire responses and returns the ranked
// recommendations. A backend failure report yields ErrRejected.
func (c *Client) SubmitPathway(ctx context.Context, pathway string, responses map[string]any) ([]models.Recommendation, error) {
	if responses == nil {
		responses = map[string]any{}
	}

	var resp models.SubmitResponse
	err := c.post(ctx, models.OperationSubmit, c.submitURL, models.SubmitRequest{
		Pathway:   pathway,
		Responses: responses,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if !resp.Succeeded() {
		metrics.ObserveUpstream(models.OperationSubmit, models.OutcomeRejected)
		if reason := resp.Reason(); reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrRejected, reason)
		}
		return nil, ErrRejected
	}

	// An empty list is a valid answer; a missing or null one is not.
	if resp.Recommendations == nil {
		metrics.ObserveUpstream(models.OperationSubmit, models.OutcomeFailed)
		return nil, &Error{Op: models.OperationSubmit, Err: ErrNoRecommendations}
	}

	metrics.ObserveUpstream(models.OperationSubmit, models.OutcomeSuccess)
	return resp.Recommendations, nil
}

// SaveRecommendation forwards one recommendation, unchanged, for saving.
func (c *Client) SaveRecommendation(ctx context.Context, pathway string, rec models.Recommendation) error {
	var resp models.SaveResponse
	err := c.post(ctx, models.OperationSave, c.saveURL, models.SaveRequest{
		Pathway:        pathway,
		Recommendation: rec,
	}, &resp)
	if err != nil {
		return err
	}

	if !resp.Succeeded() {
		metrics.ObserveUpstream(models.OperationSave, models.OutcomeRejected)
		if reason := resp.Reason(); reason != "" {
			return fmt.Errorf("%w: %s", ErrRejected, reason)
		}
		return ErrRejected
	}

	metrics.ObserveUpstream(models.OperationSave, models.OutcomeSuccess)
	return nil
}

// post sends body as JSON and decodes the JSON answer into out. The status
// code is not checked: the backend reports failures in the body.
func (c *Client) post(ctx context.Context, op, url string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstreamDuration(op, time.Since(start))
		if err != nil {
			metrics.ObserveUpstream(op, models.OutcomeFailed)
		}
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Pathways-Frontend/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)}
	}

	return nil
}
