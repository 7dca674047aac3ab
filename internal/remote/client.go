// Package remote talks to the learner's own sheet-backed sync endpoint.
// The protocol is a single POST URL accepting {action: "save"|"load"}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/islandlog/islandlog/internal/logger"
	"github.com/islandlog/islandlog/internal/models"
)

type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("remote"),
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// Save pushes the full snapshot to the remote endpoint. The push is
// one-way: nothing from the remote side is merged back.
func (c *Client) Save(ctx context.Context, url string, snap models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("remote")

	body, err := json.Marshal(map[string]any{
		"action": "save",
		"data":   snap,
	})
	if err != nil {
		return err
	}

	log.Debug("saving snapshot to remote (%d bytes)", len(body))
	start := time.Now()

	raw, err := c.post(ctx, url, body)
	if err != nil {
		log.Error("remote save failed: %v", err)
		return err
	}

	var resp envelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Error("failed to decode save response: %v", err)
		return err
	}
	if resp.Status != "success" {
		log.Error("remote rejected save: %s", resp.Message)
		return fmt.Errorf("remote save rejected: %s", resp.Message)
	}

	log.Info("snapshot saved to remote in %v", time.Since(start))
	return nil
}

// Load fetches the remote snapshot. A null data field means the remote
// store has never been written; the caller distinguishes that from an
// error.
func (c *Client) Load(ctx context.Context, url string) (json.RawMessage, error) {
	log := logger.FromContext(ctx).WithPrefix("remote")

	body, err := json.Marshal(map[string]any{"action": "load"})
	if err != nil {
		return nil, err
	}

	log.Debug("loading snapshot from remote")
	start := time.Now()

	raw, err := c.post(ctx, url, body)
	if err != nil {
		log.Error("remote load failed: %v", err)
		return nil, err
	}

	var resp envelope
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Error("failed to decode load response: %v", err)
		return nil, err
	}
	if resp.Status != "success" {
		log.Error("remote rejected load: %s", resp.Message)
		return nil, fmt.Errorf("remote load rejected: %s", resp.Message)
	}

	log.Info("snapshot loaded from remote in %v (%d bytes)", time.Since(start), len(resp.Data))
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// Sheet script endpoints reject preflighted content types; plain text
	// keeps the request simple and survives their redirect handling.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("remote status %d: %s", resp.StatusCode, string(snippet))
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}
