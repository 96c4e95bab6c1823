package mineskin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mineskin/skinbot/internal/config"
)

const (
	userAgent = "MineSkin-DiscordBot"

	generateTimeout = 25 * time.Second
	validateTimeout = 10 * time.Second
)

// Client talks to the MineSkin HTTP API. Built once at startup and safe
// for concurrent use; generation calls are additionally serialized by the
// caller's dispatch queue.
type Client struct {
	httpClient *http.Client
	base       string
	apiKey     string
}

// NewClient creates a MineSkin API client.
func NewClient(cfg config.MineSkinConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: generateTimeout},
		base:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}
}

// Generate submits a skin generation request for the job.
//
// An error payload from the API is not an error return: it becomes a
// GenerateResult with Failure set, so the caller always receives a result
// it can deliver. Only transport-level failures return an error. A job
// with an unknown Kind is a code defect and panics.
func (c *Client) Generate(ctx context.Context, job *Job) (*GenerateResult, error) {
	body := map[string]any{}
	switch job.Kind {
	case KindUser:
		body["uuid"] = job.Value
	case KindURL:
		body["url"] = job.Value
	default:
		panic(fmt.Sprintf("mineskin: unknown generate kind %q", job.Kind))
	}
	if job.Variant != "" && job.Variant != VariantAuto {
		body["variant"] = string(job.Variant)
	}
	if job.Name != "" {
		body["name"] = job.Name
	}

	res := &GenerateResult{
		Token:         job.Token,
		InteractionID: job.InteractionID,
		Kind:          job.Kind,
	}

	status, data, err := c.post(ctx, "/generate/"+string(job.Kind), body)
	if err != nil {
		return nil, err
	}

	if status >= http.StatusBadRequest {
		apiErr := &APIError{}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			return nil, fmt.Errorf("mineskin generate: status %d: %s", status, snippet(data))
		}
		res.Failure = apiErr
		return res, nil
	}

	skin := &GeneratedSkin{}
	if err := json.Unmarshal(data, skin); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	res.Skin = skin
	return res, nil
}

// ValidateName checks a Minecraft username and resolves its account UUID.
// Carries its own timeout, shorter than generation's.
func (c *Client) ValidateName(ctx context.Context, name string) (*NameValidation, error) {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/validate/name/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("build validate request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mineskin validate: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read validate response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("mineskin validate: status %d: %s", resp.StatusCode, snippet(data))
	}

	validation := &NameValidation{}
	if err := json.Unmarshal(data, validation); err != nil {
		return nil, fmt.Errorf("decode validate response: %w", err)
	}
	return validation, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("mineskin %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read mineskin response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func snippet(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "…"
	}
	return string(b)
}
