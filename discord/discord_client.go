package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Message struct {
	Content string  `json:"content"`
	Embeds  []Embed `json:"embeds"`
}

type Embed struct {
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const defaultBaseURL = "https://discord.com/api/v10"

var ErrNoChannel = errors.New("channel id cannot be empty")

// APIError is a non-2xx answer of the Discord API.
type APIError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %v: status %d: %v", e.Path, e.StatusCode, e.Body)
}

// RateLimited reports a 429 answer.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

type DiscordClient interface {
	SendMessage(ctx context.Context, channelID string, message Message) error
}

func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultBaseURL)
}

func NewClientWithBaseURL(token, baseURL string) *Client {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		client:  client,
	}
}

// SendMessage posts message to channelID. Non-2xx answers come back as *APIError.
func (c *Client) SendMessage(ctx context.Context, channelID string, message Message) error {
	if len(strings.TrimSpace(channelID)) == 0 {
		return ErrNoChannel
	}

	return c.post(ctx, message, "channels", channelID, "messages")
}

func (c *Client) post(ctx context.Context, payload any, elem ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, elem...)

	if err != nil {
		return fmt.Errorf("invalid discord endpoint %v: %w", strings.Join(elem, "/"), err)
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to encode %v payload: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to build request for %v: %w", endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("discord request failed: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Path: strings.Join(elem, "/"), StatusCode: res.StatusCode}

	if data, readErr := io.ReadAll(io.LimitReader(res.Body, 4096)); readErr == nil {
		apiErr.Body = strings.TrimSpace(string(data))
	}

	return apiErr
}
