// Package mailer sends outbound mail through an HTTP relay.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts messages to the configured mail relay.
type Client struct {
	http    *resty.Client
	baseURL string
	from    string
}

func New(baseURL, from string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: baseURL,
		from:    from,
	}
}

// SendResetEmail delivers a password-reset token to the given address.
func (c *Client) SendResetEmail(ctx context.Context, to, token string) error {
	body := map[string]string{
		"from":    c.from,
		"to":      to,
		"subject": "Password reset",
		"text":    fmt.Sprintf("Use this token to reset your password: %s", token),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.baseURL + "/send")
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("send reset email: relay returned %s", resp.Status())
	}
	return nil
}
