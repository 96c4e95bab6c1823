package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mineskin/skinbot/internal/config"
	"github.com/mineskin/skinbot/internal/queue"
)

const (
	userAgent = "MineSkin-DiscordBot"

	// Discord allows a global burst of ~50 req/s but webhook edits are
	// far stricter; 200ms spacing keeps the bot comfortably under both.
	restInterval = 200 * time.Millisecond
	restTimeout  = 10 * time.Second
)

// RESTRequest is one authenticated call to the Discord API, executed by
// the client's dispatch queue.
type RESTRequest struct {
	Method string
	Path   string // relative to the API base, e.g. /webhooks/{app}/{token}
	Body   any    // JSON-marshaled when non-nil
}

// APIResponse is the raw outcome of a REST call.
type APIResponse struct {
	Status int
	Body   []byte
}

// Client performs Discord REST calls through a rate-limited queue. The
// underlying HTTP client is built once and is safe for concurrent use;
// the queue guarantees at most one call is in flight.
type Client struct {
	httpClient *http.Client
	base       string
	token      string
	appID      string
	queue      *queue.Queue[RESTRequest, *APIResponse]
}

// NewClient creates a Discord REST client and starts its dispatch queue.
func NewClient(cfg config.DiscordConfig) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: restTimeout},
		base:       strings.TrimRight(cfg.APIBase, "/"),
		token:      cfg.Token,
		appID:      cfg.AppID,
	}
	c.queue = queue.New("discord", restInterval, restTimeout, c.do)
	return c
}

// Do submits a request to the dispatch queue and returns its future.
func (c *Client) Do(req RESTRequest) <-chan queue.Result[*APIResponse] {
	return c.queue.Submit(req)
}

// EditOriginalResponse replaces the deferred acknowledgment message of the
// interaction addressed by token.
func (c *Client) EditOriginalResponse(token string, msg *MessageData) <-chan queue.Result[*APIResponse] {
	return c.Do(RESTRequest{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/webhooks/%s/%s/messages/@original", c.appID, token),
		Body:   msg,
	})
}

// FollowupMessage posts an additional message to the interaction's channel.
func (c *Client) FollowupMessage(token string, msg *MessageData) <-chan queue.Result[*APIResponse] {
	return c.Do(RESTRequest{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/webhooks/%s/%s", c.appID, token),
		Body:   msg,
	})
}

// RegisterCommands uploads the bot's application-command schema. Called
// once at startup; routed through the queue like every other call.
func (c *Client) RegisterCommands(ctx context.Context) error {
	fut := c.Do(RESTRequest{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/applications/%s/commands", c.appID),
		Body:   SkinCommand(),
	})
	select {
	case res := <-fut:
		if res.Err != nil {
			return fmt.Errorf("register commands: %w", res.Err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueSize returns the number of REST calls pending or in flight.
func (c *Client) QueueSize() int { return c.queue.Size() }

// Close shuts down the dispatch queue, resolving pending futures.
func (c *Client) Close() { c.queue.Close() }

func (c *Client) do(ctx context.Context, req RESTRequest) (*APIResponse, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.base+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bot "+c.token)
	httpReq.Header.Set("User-Agent", userAgent)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("discord %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read discord response: %w", err)
	}

	res := &APIResponse{Status: resp.StatusCode, Body: data}
	if resp.StatusCode >= http.StatusBadRequest {
		return res, fmt.Errorf("discord %s %s: status %d: %s", req.Method, req.Path, resp.StatusCode, truncate(data, 200))
	}
	return res, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
