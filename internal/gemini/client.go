// Package gemini provides a client for the Google generative-language
// API, with retry-on-transient-failure semantics suited to a Git hook:
// the commit must never be blocked by remote-service flakiness.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"draftmsg.dev/draftmsg/internal/config"
	draftmsgerrors "draftmsg.dev/draftmsg/internal/errors"
	"draftmsg.dev/draftmsg/internal/tui"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client calls the Gemini generateContent endpoint
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	markers     []string
	sleep       func(ctx context.Context, d time.Duration) error
	log         *tui.Splog
}

// NewClient creates a new Gemini client from the resolved configuration
func NewClient(cfg *config.Config, log *tui.Splog) *Client {
	return &Client{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
		maxAttempts: cfg.MaxAttempts,
		markers:     cfg.TransientMarkers,
		sleep:       ctxSleep,
		log:         log,
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Generate sends the prompt to the model and returns the decoded response.
// The response shape is not contractually stable across provider versions,
// so it is returned as a generic value for defensive extraction.
//
// Transient failures are retried with exponential backoff. When all
// attempts are exhausted the client does not fail hard: it warns and
// returns ErrServiceUnavailable so the caller can degrade to a no-op.
// Non-transient failures are returned immediately as GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (any, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err, c.markers) {
			return nil, draftmsgerrors.NewGenerationError(c.model, err)
		}

		if attempt < c.maxAttempts {
			wait := Backoff(attempt)
			c.log.Warn("transient generation error (attempt %d/%d): %v. Retrying in %s...", attempt, c.maxAttempts, err, wait)
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return nil, draftmsgerrors.NewGenerationError(c.model, sleepErr)
			}
		}
	}

	c.log.Warn("generation service unavailable after %d attempts: %v. Skipping commit message generation.", c.maxAttempts, lastErr)
	return nil, fmt.Errorf("%w: %v", draftmsgerrors.ErrServiceUnavailable, lastErr)
}

// generateOnce performs a single generateContent call
func (c *Client) generateOnce(ctx context.Context, prompt string) (any, error) {
	url := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)

	body := generateRequest{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: prompt}},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	// Decode into a generic value: the schema varies between releases
	// and the sanitizer walks it defensively.
	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return result, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}
