package neonauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.SessionVerifier contra Neon Auth.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.GetSession(ctx, token)
	if err != nil {
		// El middleware decide si corta o no; acá solo normalizamos.
		return auth.Claims{}, fmt.Errorf("neonauth verify failed: %w", err)
	}
	return claims, nil
}
