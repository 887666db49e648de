package blob

import (
	"context"
	"io"
)

// Store sube bytes de imagen y devuelve la URL pública.
// El core solo persiste la URL; no procesa imágenes.
type Store interface {
	Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}
