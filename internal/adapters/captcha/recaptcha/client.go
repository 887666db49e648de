package recaptcha

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/httpclient"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// minScore: reCAPTCHA v3 devuelve un score; debajo de 0.5 se rechaza.
const minScore = 0.5

var ErrUpstream = errors.New("recaptcha upstream error")

type Config struct {
	SecretKey string
	Timeout   time.Duration
}

// Client implementa captcha.Verifier contra el siteverify de Google.
type Client struct {
	http      *httpclient.Client
	secretKey string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		http:      httpclient.New(timeout),
		secretKey: strings.TrimSpace(cfg.SecretKey),
	}
}

func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	// Sin secret configurado (dev) se permite pasar, igual que el
	// registro original sin RECAPTCHA_SECRET_KEY.
	if c.secretKey == "" {
		return true, nil
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)

	var out struct {
		Success bool     `json:"success"`
		Score   *float64 `json:"score"`
	}
	if err := c.http.DoForm(ctx, verifyURL, form, &out); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !out.Success {
		return false, nil
	}
	if out.Score != nil && *out.Score < minScore {
		return false, nil
	}
	return true, nil
}
