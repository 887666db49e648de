package usuarios

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/auth/register", registerHandler(svc, log))
}

type registerRequest struct {
	NombreUsuario  string `json:"nombreUsuario"`
	Email          string `json:"email"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type usuarioResponse struct {
	ID            string    `json:"id"`
	NombreUsuario string    `json:"nombreUsuario"`
	Email         string    `json:"email"`
	FechaRegistro time.Time `json:"fechaRegistro"`
}

// registerHandler godoc
// @Summary Registrar un usuario (gateado por reCAPTCHA)
// @Success 201 {object} usuarioResponse
// @Router /auth/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "json invalido")
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			NombreUsuario: req.NombreUsuario,
			Email:         req.Email,
			CaptchaToken:  req.RecaptchaToken,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrCaptcha):
				writeError(w, http.StatusForbidden, "verificacion CAPTCHA fallida")
			case errors.Is(err, ErrEmailEnUso):
				writeError(w, http.StatusConflict, "email ya registrado")
			case errors.Is(err, ErrCaptchaCaido):
				writeError(w, http.StatusBadGateway, "verificador CAPTCHA no disponible")
			default:
				log.Error("unhandled error", map[string]any{"error": err.Error()})
				writeError(w, http.StatusInternalServerError, "error interno")
			}
			return
		}

		writeJSON(w, http.StatusCreated, usuarioResponse{
			ID:            u.ID,
			NombreUsuario: u.NombreUsuario,
			Email:         u.Email,
			FechaRegistro: u.FechaRegistro,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
