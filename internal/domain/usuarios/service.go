package usuarios

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/captcha"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrCaptcha      = errors.New("captcha rechazado")
	ErrEmailEnUso   = errors.New("email ya registrado")
	ErrCaptchaCaido = errors.New("captcha no disponible")
)

type Service struct {
	repo    Repository
	captcha captcha.Verifier // puede ser nil (dev: registro sin CAPTCHA)
	now     func() time.Time
}

func NewService(repo Repository, verifier captcha.Verifier) *Service {
	return &Service{
		repo:    repo,
		captcha: verifier,
		now:     time.Now,
	}
}

type RegisterInput struct {
	NombreUsuario string
	Email         string
	CaptchaToken  string
}

// Register valida el CAPTCHA y crea el perfil. Las credenciales las maneja
// el proveedor de auth por su lado; acá solo queda la fila de usuario.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Usuario, error) {
	nombre := strings.TrimSpace(in.NombreUsuario)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if nombre == "" {
		return Usuario{}, fmt.Errorf("%w: nombre_usuario", ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return Usuario{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}

	if s.captcha != nil {
		if strings.TrimSpace(in.CaptchaToken) == "" {
			return Usuario{}, fmt.Errorf("%w: captcha_token", ErrInvalidInput)
		}
		ok, err := s.captcha.Verify(ctx, in.CaptchaToken)
		if err != nil {
			return Usuario{}, fmt.Errorf("%w: %v", ErrCaptchaCaido, err)
		}
		if !ok {
			return Usuario{}, ErrCaptcha
		}
	}

	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return Usuario{}, ErrEmailEnUso
	case !errors.Is(err, ErrNotFound):
		// Falla del storage, no "email libre"
		return Usuario{}, fmt.Errorf("check email %q: %w", email, err)
	}

	u := Usuario{
		ID:            uuid.NewString(),
		NombreUsuario: nombre,
		Email:         email,
		FechaRegistro: s.now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return Usuario{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Usuario, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, fmt.Errorf("get usuario %q: %w", id, err)
	}
	return u, nil
}
