package dummyjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hanksha/fitclass-booking/session"
)

const DefaultLoginURL = "https://dummyjson.com/user/login"

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

type LoginResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginError is a rejected credential exchange.
type LoginError struct {
	StatusCode int
	Message    string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed with status %d: %v", e.StatusCode, e.UserMessage())
}

// UserMessage is the text shown on the login form.
func (e *LoginError) UserMessage() string {
	if len(e.Message) == 0 {
		return "Login failed"
	}
	return e.Message
}

type Client struct {
	loginURL      string
	expiresInMins int
	client        *http.Client
}

func NewClient(loginURL string, expiresInMins int) *Client {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	return &Client{
		loginURL:      loginURL,
		expiresInMins: expiresInMins,
		client:        client,
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, err := json.Marshal(loginRequest{
		Username:      username,
		Password:      password,
		ExpiresInMins: c.expiresInMins,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(body))

	if err != nil {
		return nil, fmt.Errorf("failed create new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)

	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer res.Body.Close()

	bodyBytes, readErr := io.ReadAll(res.Body)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		loginErr := &LoginError{StatusCode: res.StatusCode}

		if readErr == nil {
			var errBody struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(bodyBytes, &errBody) == nil {
				loginErr.Message = errBody.Message
			}
		}

		return nil, loginErr
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read body: %w", readErr)
	}

	var loginResponse LoginResponse
	err = json.Unmarshal(bodyBytes, &loginResponse)

	if err != nil {
		return nil, fmt.Errorf("failed reading body: %w", err)
	}

	return &loginResponse, nil
}

// Authenticate makes the client usable as the session store's authenticator.
func (c *Client) Authenticate(ctx context.Context, username, password string) (session.User, error) {
	res, err := c.Login(ctx, username, password)

	if err != nil {
		return session.User{}, err
	}

	return session.User{
		ID:        strconv.Itoa(res.ID),
		Username:  res.Username,
		Email:     res.Email,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		Token:     res.AccessToken,
	}, nil
}
