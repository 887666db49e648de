package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/adapters/blob/vercelblob"
	"github.com/eugeniosaintemarie/encontratumascota/internal/middleware"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/blob"
)

// Usuarios restringidos que no pueden subir archivos.
var restrictedUploadUsers = map[string]struct{}{
	"demo":  {},
	"admin": {},
}

// uploadHandler godoc
// @Summary Subir una imagen y obtener su URL pública
// @Accept multipart/form-data
// @Success 200 {object} map[string]string
// @Router /upload [post]
func uploadHandler(store blob.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeUploadError(w, http.StatusServiceUnavailable, "almacenamiento de imagenes no configurado")
			return
		}

		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeUploadError(w, http.StatusUnauthorized, "no autenticado")
			return
		}
		if _, restricted := restrictedUploadUsers[claims.UserID]; restricted {
			writeUploadError(w, http.StatusForbidden, "accion no permitida para este usuario")
			return
		}

		// Techo del body completo antes de parsear: un archivo que excede
		// el límite se corta acá, sin bufferearlo entero. El margen cubre
		// boundaries y headers del multipart.
		r.Body = http.MaxBytesReader(w, r.Body, vercelblob.MaxSizeBytes+32<<10)
		if err := r.ParseMultipartForm(vercelblob.MaxSizeBytes + 1); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeUploadError(w, http.StatusBadRequest, "la imagen supera el limite de 4.5MB")
				return
			}
			writeUploadError(w, http.StatusBadRequest, "multipart invalido")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeUploadError(w, http.StatusBadRequest, "no se recibio ningun archivo")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext := "jpg"
		if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
			ext = parts[1]
		}
		filename := fmt.Sprintf("mascotas/img-%d.%s", time.Now().UnixMilli(), ext)

		url, err := store.Put(r.Context(), filename, contentType, header.Size, file)
		if err != nil {
			switch {
			case errors.Is(err, vercelblob.ErrNotAnImage):
				writeUploadError(w, http.StatusBadRequest, "el archivo debe ser una imagen valida")
			case errors.Is(err, vercelblob.ErrTooLarge):
				writeUploadError(w, http.StatusBadRequest, "la imagen supera el limite de 4.5MB")
			default:
				writeUploadError(w, http.StatusBadGateway, "error subiendo la imagen")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

func writeUploadError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
