// Package enrich implements the client for the external enrichment
// webhook: a stateless transformer that expands a raw title and
// description into an enhanced title, description, and step list.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"taskdeck/internal/domain"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests inject
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxBody = 2 << 20

// Client calls the enrichment webhook.
type Client struct {
	webhookURL string
	http       Doer
	logger     *slog.Logger
}

// NewClient creates a new enrichment client with dependency injection.
func NewClient(webhookURL string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       doer,
		logger:     logger,
	}
}

type request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// result mirrors the webhook's response element. Pointer fields make
// absence detectable so a partial object can be rejected.
type result struct {
	EnhancedTitle       *string   `json:"enhancedTitle"`
	EnhancedDescription *string   `json:"enhancedDescription"`
	Steps               *[]string `json:"steps"`
}

// Enrich posts the raw title and description and validates the
// response. The webhook returns a JSON array; only the first element
// is used. Any shape deviation fails closed: an empty array, a missing
// or empty enhanced title, or an undecodable body are all errors, never
// a partial success.
func (c *Client) Enrich(ctx context.Context, title, description string) (domain.Enrichment, error) {
	c.logger.Debug("enriching task", "title", title)

	payload, err := json.Marshal(request{Title: title, Description: description})
	if err != nil {
		return domain.Enrichment{}, &domain.EnrichError{Op: "enrich", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return domain.Enrichment{}, &domain.EnrichError{Op: "enrich", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Enrichment{}, &domain.EnrichError{Op: "enrich", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return domain.Enrichment{}, &domain.EnrichError{Op: "enrich", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Enrichment{}, &domain.EnrichError{
			Op:      "enrich",
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var results []result
	if err := json.Unmarshal(body, &results); err != nil {
		return domain.Enrichment{}, &domain.EnrichError{
			Op:  "enrich",
			Err: fmt.Errorf("%w: %v", domain.ErrBadPayload, err),
		}
	}

	if len(results) == 0 {
		return domain.Enrichment{}, &domain.EnrichError{
			Op:      "enrich",
			Message: "empty result array",
			Err:     domain.ErrBadPayload,
		}
	}

	first := results[0]
	if first.EnhancedTitle == nil || strings.TrimSpace(*first.EnhancedTitle) == "" {
		return domain.Enrichment{}, &domain.EnrichError{
			Op:      "enrich",
			Message: "missing enhancedTitle",
			Err:     domain.ErrBadPayload,
		}
	}
	if first.EnhancedDescription == nil {
		return domain.Enrichment{}, &domain.EnrichError{
			Op:      "enrich",
			Message: "missing enhancedDescription",
			Err:     domain.ErrBadPayload,
		}
	}

	steps := []string{}
	if first.Steps != nil {
		steps = *first.Steps
	}

	c.logger.Debug("task enriched", "title", *first.EnhancedTitle, "steps", len(steps))
	return domain.Enrichment{
		Title:       *first.EnhancedTitle,
		Description: *first.EnhancedDescription,
		Steps:       steps,
	}, nil
}
