package captcha

import "context"

// Verifier valida un token de CAPTCHA. Solo lo consume el registro.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}
