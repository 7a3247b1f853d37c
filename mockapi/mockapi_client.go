package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	bk "github.com/hanksha/fitclass-booking/booking"
)

var ErrNotFound = errors.New("resource not found")

// StatusError is a non-2xx answer of the mock API.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: request failed with status '%v' and body:\n%v", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	return &Client{baseURL: baseURL, client: client}
}

func (c *Client) GetClasses(ctx context.Context) ([]bk.FitnessClass, error) {
	classes := []bk.FitnessClass{}

	if err := c.do(ctx, "fetch classes", http.MethodGet, "", nil, &classes, "classes"); err != nil {
		return nil, err
	}

	if classes == nil {
		classes = []bk.FitnessClass{}
	}

	return classes, nil
}

func (c *Client) GetClass(ctx context.Context, id string) (bk.FitnessClass, error) {
	var class bk.FitnessClass

	if err := c.do(ctx, "fetch class", http.MethodGet, "", nil, &class, "classes", id); err != nil {
		return bk.FitnessClass{}, err
	}

	return class, nil
}

func (c *Client) PatchClassRemaining(ctx context.Context, token, id string, remaining int) (bk.FitnessClass, error) {
	var class bk.FitnessClass
	body := map[string]int{"remaining": remaining}

	if err := c.do(ctx, "update class", http.MethodPatch, token, body, &class, "classes", id); err != nil {
		return bk.FitnessClass{}, err
	}

	return class, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (bk.UserDocument, error) {
	var user bk.UserDocument

	if err := c.do(ctx, "fetch user data", http.MethodGet, "", nil, &user, "users", id); err != nil {
		return bk.UserDocument{}, err
	}

	return user, nil
}

func (c *Client) PutUser(ctx context.Context, token string, doc bk.UserDocument) (bk.UserDocument, error) {
	var user bk.UserDocument

	if err := c.do(ctx, "replace user", http.MethodPut, token, doc, &user, "users", doc.ID); err != nil {
		return bk.UserDocument{}, err
	}

	return user, nil
}

func (c *Client) PatchUserBookings(ctx context.Context, token, id string, bookings []bk.Booking) (bk.UserDocument, error) {
	var user bk.UserDocument
	body := map[string][]bk.Booking{"bookings": bookings}

	if err := c.do(ctx, "update user bookings", http.MethodPatch, token, body, &user, "users", id); err != nil {
		return bk.UserDocument{}, err
	}

	return user, nil
}

func (c *Client) do(ctx context.Context, op, method, token string, in, out any, elem ...string) error {
	reqURL, err := c.getURL(elem...)

	if err != nil {
		return err
	}

	var body io.Reader = http.NoBody

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)

	if err != nil {
		return fmt.Errorf("failed create new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(token) != 0 {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("%v: failed to send request: %w", op, err)
	}

	defer res.Body.Close()

	bodyBytes, readErr := io.ReadAll(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		if readErr != nil {
			return fmt.Errorf("%v: request failed with status %d; also failed reading body: %w", op, res.StatusCode, readErr)
		}
		return &StatusError{Op: op, StatusCode: res.StatusCode, Body: string(bodyBytes)}
	}

	if readErr != nil {
		return fmt.Errorf("%v: failed to read body: %w", op, readErr)
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%v: failed reading body: %w", op, err)
	}

	return nil
}

func (c *Client) getURL(elem ...string) (string, error) {
	clientURL, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return "", fmt.Errorf("failed to create URL: %w", err)
	}

	return clientURL, nil
}
