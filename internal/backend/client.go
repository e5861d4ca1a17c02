// Package backend implements the request/response protocol against the
// remote answer-generation endpoint.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TransportError indicates the network call could not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates the backend answered with a non-success status.
type ProtocolError struct {
	Status int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Reply is the backend's answer to a single chat request. Answer may be
// empty; the engine substitutes a placeholder in that case.
type Reply struct {
	ConversationID string
	Answer         string
}

// Client executes chat calls against a fixed endpoint.
type Client struct {
	chatURL string
	client  *http.Client
}

// NewClient creates a backend client for the given chat endpoint.
func NewClient(chatURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		chatURL: chatURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// conversationID tolerates both string and numeric identifiers on the wire.
type conversationID string

func (c *conversationID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = conversationID(s)
		return nil
	}
	*c = conversationID(b)
	return nil
}

type chatResponse struct {
	ConversationID conversationID `json:"conversation_id"`
	Answer         string         `json:"answer"`
}

// Send posts one message on behalf of an owner and returns the backend's
// reply. Failures are typed: *TransportError when the call cannot
// complete, *ProtocolError on a non-2xx status.
func (c *Client) Send(ctx context.Context, ownerID, content string) (*Reply, error) {
	form := url.Values{}
	form.Set("user_id", ownerID)
	form.Set("message", content)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProtocolError{Status: resp.StatusCode}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &Reply{
		ConversationID: string(chatResp.ConversationID),
		Answer:         chatResp.Answer,
	}, nil
}
