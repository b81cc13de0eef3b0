package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по идентификатору
func (c *Client) GetUser(ctx context.Context, identity string) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(identity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return &user, nil
}

// VerifyUser проверяет, что пользователь существует.
// При недоступности UserService возвращает ErrServiceDegraded.
func (c *Client) VerifyUser(ctx context.Context, identity string) error {
	_, err := c.GetUser(ctx, identity)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrUserNotFound) {
		c.log.Info("User %q not found in UserService", identity)
		return err
	}

	c.log.Error("UserService unavailable, skipping verification of user %q: %v", identity, err)
	return fmt.Errorf("%w: identity=%s, error=%w", ErrServiceDegraded, identity, err)
}
