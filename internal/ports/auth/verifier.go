package auth

import "context"

// SessionVerifier resuelve un token de sesión en claims o error.
// El core nunca llama esto directo; solo consume el userID resuelto.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
