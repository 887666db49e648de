package vercelblob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("blob client not configured")
	ErrNotAnImage    = errors.New("el archivo debe ser una imagen")
	ErrTooLarge      = errors.New("la imagen supera el limite de tamano")
	ErrUpstream      = errors.New("blob upstream error")
)

// MaxSizeBytes es el techo de 4.5 MB del store.
const MaxSizeBytes = int64(4.5 * 1024 * 1024)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client sube imágenes a un blob store tipo Vercel Blob y devuelve la
// URL pública. No procesa la imagen.
type Client struct {
	http  *httpclient.Client
	token string
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:  hc,
		token: strings.TrimSpace(cfg.Token),
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.token != ""
}

// Put implementa blob.Store: valida content-type y tamaño, sube y
// devuelve la URL pública.
func (c *Client) Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}
	if size > MaxSizeBytes {
		return "", ErrTooLarge
	}

	var out struct {
		URL string `json:"url"`
	}

	headers := map[string]string{
		"Authorization":  "Bearer " + c.token,
		"X-Content-Type": contentType,
		"X-Access":       "public",
	}

	path := "/upload?pathname=" + url.QueryEscape(filename)
	if err := c.http.DoRaw(ctx, http.MethodPut, path, headers, contentType, body, &out); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return "", fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("blob response missing url")
	}
	return out.URL, nil
}
