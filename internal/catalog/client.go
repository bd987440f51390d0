package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backlot/internal/config"
	"backlot/internal/screenplay"
	"backlot/internal/services"
)

const defaultHTTPTimeout = 10 * time.Second

// Service is the read surface of the studio catalog used by the session,
// resolver, and summarizer.
type Service interface {
	GetProject(ctx context.Context, projectID string) (*Project, error)
	GetEpisode(ctx context.Context, episodeID string) (*Episode, error)
	GetPart(ctx context.Context, partID string) (*Part, error)
	GetProjectFull(ctx context.Context, projectID string) (*ProjectFull, error)
	GetBeats(ctx context.Context, partID string) ([]Beat, error)
	GetShots(ctx context.Context, partID string) ([]Shot, error)
	GetPartImages(ctx context.Context, partID string) ([]Image, error)
	GetPartClips(ctx context.Context, partID string) ([]Clip, error)
}

// Client talks to the studio catalog HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a catalog client from connection settings.
func New(cfg config.Catalog, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GetProject fetches one project by identifier.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var out Project
	if err := c.getJSON(ctx, "get project", "/v1/projects/"+url.PathEscape(projectID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEpisode fetches one episode by identifier.
func (c *Client) GetEpisode(ctx context.Context, episodeID string) (*Episode, error) {
	var out Episode
	if err := c.getJSON(ctx, "get episode", "/v1/episodes/"+url.PathEscape(episodeID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPart fetches one part by identifier.
func (c *Client) GetPart(ctx context.Context, partID string) (*Part, error) {
	var out Part
	if err := c.getJSON(ctx, "get part", "/v1/parts/"+url.PathEscape(partID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProjectFull fetches the whole-project overview with per-part counts.
func (c *Client) GetProjectFull(ctx context.Context, projectID string) (*ProjectFull, error) {
	var out ProjectFull
	if err := c.getJSON(ctx, "get project full", "/v1/projects/"+url.PathEscape(projectID)+"/full", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBeats fetches the beats recorded against a part. The payload goes
// through the screenplay decode rules so optional fields default instead of
// propagating nulls.
func (c *Client) GetBeats(ctx context.Context, partID string) ([]Beat, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "get beats", "/v1/parts/"+url.PathEscape(partID)+"/beats", &raw); err != nil {
		return nil, err
	}
	return screenplay.DecodeBeats(raw)
}

// GetShots fetches the shots recorded against a part.
func (c *Client) GetShots(ctx context.Context, partID string) ([]Shot, error) {
	var out []Shot
	if err := c.getJSON(ctx, "get shots", "/v1/parts/"+url.PathEscape(partID)+"/shots", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPartImages fetches the generated stills attached to a part.
func (c *Client) GetPartImages(ctx context.Context, partID string) ([]Image, error) {
	var out []Image
	if err := c.getJSON(ctx, "get part images", "/v1/parts/"+url.PathEscape(partID)+"/images", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPartClips fetches the generated clips attached to a part.
func (c *Client) GetPartClips(ctx context.Context, partID string) ([]Clip, error) {
	var out []Clip
	if err := c.getJSON(ctx, "get part clips", "/v1/parts/"+url.PathEscape(partID)+"/clips", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, target any) error {
	if c == nil || c.baseURL == "" {
		return services.Wrap(services.ErrConfiguration, "catalog", operation, "base url not configured", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return services.Wrap(services.ErrValidation, "catalog", operation, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrUpstream, "catalog", operation, "http request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return services.Wrap(services.ErrUpstream, "catalog", operation, "read response body", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "catalog", operation, fmt.Sprintf("%s returned 404", path), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		return services.Wrap(services.ErrUpstream, "catalog", operation,
			fmt.Sprintf("%s returned http %d: %s", path, resp.StatusCode, snippet(body)), nil)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return services.Wrap(services.ErrUpstream, "catalog", operation, "decode response", err)
	}
	return nil
}

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	const limit = 160
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
