package publicaciones

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrNoAutorizado   = errors.New("no autorizado")
	ErrEstadoInvalido = errors.New("estado invalido")
)

type Service struct {
	repo Repository
	now  func() time.Time

	// demoMode habilita las filas de prueba en los listados.
	// Se fija al construir (viene de config, no del request).
	demoMode bool

	newID func() string
}

func NewService(repo Repository, demoMode bool) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		demoMode: demoMode,
		newID:    newShortID,
	}
}

// newShortID genera un id corto de 10 hex chars (mismo ancho que migró
// el esquema original de uuid a text).
func newShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

type CreateInput struct {
	Especie     string
	Raza        string
	Sexo        string
	Color       string
	Descripcion string
	ImagenURL   string

	Ubicacion      string
	FechaEncuentro time.Time

	Contacto Contacto

	TransitoUrgente bool
	EsPrueba        bool
}

func (s *Service) Create(ctx context.Context, usuarioID string, in CreateInput) (Publicacion, error) {
	if strings.TrimSpace(usuarioID) == "" {
		return Publicacion{}, fmt.Errorf("%w: usuario_id", ErrInvalidInput)
	}

	especie := Especie(strings.TrimSpace(in.Especie))
	if !EsEspecieValida(especie) {
		return Publicacion{}, fmt.Errorf("%w: especie", ErrInvalidInput)
	}
	sexo := Sexo(strings.TrimSpace(in.Sexo))
	if !EsSexoValido(sexo) {
		return Publicacion{}, fmt.Errorf("%w: sexo", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Raza) == "" {
		return Publicacion{}, fmt.Errorf("%w: raza", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Ubicacion) == "" {
		return Publicacion{}, fmt.Errorf("%w: ubicacion", ErrInvalidInput)
	}
	if in.FechaEncuentro.IsZero() {
		return Publicacion{}, fmt.Errorf("%w: fecha_encuentro", ErrInvalidInput)
	}
	if err := validarContacto(in.Contacto, "contacto"); err != nil {
		return Publicacion{}, err
	}

	p := Publicacion{
		ID:               s.newID(),
		Especie:          especie,
		Raza:             strings.TrimSpace(in.Raza),
		Sexo:             sexo,
		Color:            strings.TrimSpace(in.Color),
		Descripcion:      strings.TrimSpace(in.Descripcion),
		ImagenURL:        strings.TrimSpace(in.ImagenURL),
		Ubicacion:        strings.TrimSpace(in.Ubicacion),
		FechaEncuentro:   in.FechaEncuentro,
		FechaPublicacion: s.now(),
		Contacto: Contacto{
			Nombre:   strings.TrimSpace(in.Contacto.Nombre),
			Telefono: strings.TrimSpace(in.Contacto.Telefono),
			Email:    strings.TrimSpace(in.Contacto.Email),
		},
		UsuarioID:       strings.TrimSpace(usuarioID),
		Activa:          true,
		TransitoUrgente: in.TransitoUrgente,
		EsPrueba:        in.EsPrueba,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Publicacion{}, err
	}
	return p, nil
}

// GetByID distingue id inexistente (ErrNotFound) de una falla del
// storage: esa llega tal cual y el handler la mapea a 5xx.
func (s *Service) GetByID(ctx context.Context, id string) (Publicacion, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Publicacion{}, ErrNotFound
		}
		return Publicacion{}, fmt.Errorf("get publicacion %q: %w", id, err)
	}
	return p, nil
}

func (s *Service) Listar(ctx context.Context, f Filtros) ([]Publicacion, error) {
	f.IncluirPrueba = s.demoMode
	return s.repo.List(ctx, f)
}

func (s *Service) ListByOwner(ctx context.Context, usuarioID string) ([]Publicacion, error) {
	usuarioID = strings.TrimSpace(usuarioID)
	if usuarioID == "" {
		return nil, fmt.Errorf("%w: usuario_id", ErrInvalidInput)
	}
	return s.repo.ListByOwner(ctx, usuarioID)
}

func (s *Service) ContarReunidas(ctx context.Context) (int, error) {
	return s.repo.CountReunidas(ctx)
}

// UpdateInput es el allow-list de campos editables por PATCH.
// Punteros: nil = no tocar. ID y UsuarioID no existen acá a propósito:
// no hay forma de pedir su modificación.
type UpdateInput struct {
	Raza            *string
	Color           *string
	Descripcion     *string
	ImagenURL       *string
	Ubicacion       *string
	Contacto        *Contacto
	TransitoUrgente *bool
}

func (s *Service) Actualizar(ctx context.Context, id, callerID string, in UpdateInput) (Publicacion, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Publicacion{}, err
	}
	if p.UsuarioID != strings.TrimSpace(callerID) {
		return Publicacion{}, ErrNoAutorizado
	}

	if in.Raza != nil {
		if strings.TrimSpace(*in.Raza) == "" {
			return Publicacion{}, fmt.Errorf("%w: raza", ErrInvalidInput)
		}
		p.Raza = strings.TrimSpace(*in.Raza)
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Descripcion != nil {
		p.Descripcion = strings.TrimSpace(*in.Descripcion)
	}
	if in.ImagenURL != nil {
		p.ImagenURL = strings.TrimSpace(*in.ImagenURL)
	}
	if in.Ubicacion != nil {
		if strings.TrimSpace(*in.Ubicacion) == "" {
			return Publicacion{}, fmt.Errorf("%w: ubicacion", ErrInvalidInput)
		}
		p.Ubicacion = strings.TrimSpace(*in.Ubicacion)
	}
	if in.Contacto != nil {
		if err := validarContacto(*in.Contacto, "contacto"); err != nil {
			return Publicacion{}, err
		}
		p.Contacto = *in.Contacto
	}
	if in.TransitoUrgente != nil {
		p.TransitoUrgente = *in.TransitoUrgente
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Publicacion{}, err
	}
	return p, nil
}

// Cerrar ejecuta la transición abierta -> cerrada(motivo).
//
// Si el motivo es en_transito, contacto es obligatorio y completo.
// Re-cerrar con el mismo motivo es idempotente; con otro motivo falla
// con ErrEstadoInvalido (el contacto de tránsito se escribe una sola vez).
func (s *Service) Cerrar(ctx context.Context, id, callerID string, motivo MotivoCierre, contacto *Contacto) (Publicacion, error) {
	if !EsMotivoValido(motivo) {
		return Publicacion{}, fmt.Errorf("%w: motivo", ErrInvalidInput)
	}
	if motivo == MotivoEnTransito {
		if contacto == nil {
			return Publicacion{}, fmt.Errorf("%w: falta transito_contacto", ErrInvalidInput)
		}
		if err := validarContacto(*contacto, "transito_contacto"); err != nil {
			return Publicacion{}, err
		}
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Publicacion{}, err
	}
	if p.UsuarioID != strings.TrimSpace(callerID) {
		return Publicacion{}, ErrNoAutorizado
	}

	if p.MotivoCierre != nil {
		if *p.MotivoCierre == motivo {
			return p, nil // idempotente
		}
		return Publicacion{}, ErrEstadoInvalido
	}

	p.Activa = false
	p.EnTransito = motivo == MotivoEnTransito
	m := motivo
	p.MotivoCierre = &m
	if motivo == MotivoEnTransito {
		// verbatim, sin normalizar teléfonos
		c := *contacto
		p.TransitoContacto = &c
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Publicacion{}, err
	}
	return p, nil
}

func validarContacto(c Contacto, campo string) error {
	if strings.TrimSpace(c.Nombre) == "" {
		return fmt.Errorf("%w: %s_nombre", ErrInvalidInput, campo)
	}
	if strings.TrimSpace(c.Telefono) == "" {
		return fmt.Errorf("%w: %s_telefono", ErrInvalidInput, campo)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: %s_email", ErrInvalidInput, campo)
	}
	return nil
}
