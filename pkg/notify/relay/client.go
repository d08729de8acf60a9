// Package relay sends mail through an HTTP transactional-mail API that
// accepts {from, to, subject, html} as JSON.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client is a minimal JSON mail relay client.
type Client struct {
	APIKey  string
	BaseURL string
	From    string
	httpDo  *http.Client
}

func New(apiKey, baseURL, from string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		From:    from,
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	if c.BaseURL == "" {
		return errors.New("relay: base url is empty")
	}
	data, err := json.Marshal(sendRequest{From: c.From, To: []string{to}, Subject: subject, HTML: body})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return fmt.Errorf("relay http %d: %v", resp.StatusCode, errMap)
	}
	return nil
}
