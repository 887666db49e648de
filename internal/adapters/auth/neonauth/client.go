package neonauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/httpclient"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("neonauth client not configured")
	ErrUnauthorized  = errors.New("neonauth unauthorized")
	ErrUpstream      = errors.New("neonauth upstream error")
)

// Config del cliente de sesiones. BaseURL y APIKey vienen de env.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// GetSession resuelve un token de sesión en claims.
func (c *Client) GetSession(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out struct {
		User struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}

	headers := map[string]string{
		"X-Api-Key":     c.apiKey,
		"Authorization": "Bearer " + token,
	}

	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/sessions/me", headers, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	userID := strings.TrimSpace(out.User.ID)
	if userID == "" {
		return auth.Claims{}, errors.New("neonauth response missing user id")
	}

	return auth.Claims{
		UserID:        userID,
		NombreUsuario: strings.TrimSpace(out.User.Name),
		Email:         strings.TrimSpace(out.User.Email),
	}, nil
}
