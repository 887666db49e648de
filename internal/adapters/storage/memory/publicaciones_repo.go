package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/publicaciones"
)

type publicacionesRepo struct {
	mu    sync.RWMutex
	byID  map[string]int // id -> índice en items
	items []publicaciones.Publicacion
}

// NewPublicacionesRepo crea el repo in-memory (dev/tests).
// items conserva orden de inserción; List depende de eso para el
// desempate estable del orden por fecha.
func NewPublicacionesRepo() publicaciones.Repository {
	return &publicacionesRepo{
		byID: make(map[string]int),
	}
}

func (r *publicacionesRepo) Create(ctx context.Context, p publicaciones.Publicacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("publicacion id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("publicacion already exists")
	}
	r.byID[p.ID] = len(r.items)
	r.items = append(r.items, p)
	return nil
}

func (r *publicacionesRepo) GetByID(ctx context.Context, id string) (publicaciones.Publicacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return publicaciones.Publicacion{}, publicaciones.ErrNotFound
	}
	return r.items[i], nil
}

func (r *publicacionesRepo) Update(ctx context.Context, p publicaciones.Publicacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[p.ID]
	if !ok {
		return publicaciones.ErrNotFound
	}
	r.items[i] = p
	return nil
}

func (r *publicacionesRepo) List(ctx context.Context, f publicaciones.Filtros) ([]publicaciones.Publicacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]publicaciones.Publicacion, 0)
	for _, p := range r.items {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	publicaciones.OrdenarPorFecha(out)
	return out, nil
}

func (r *publicacionesRepo) ListByOwner(ctx context.Context, usuarioID string) ([]publicaciones.Publicacion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]publicaciones.Publicacion, 0)
	for _, p := range r.items {
		if p.UsuarioID == usuarioID && p.Activa {
			out = append(out, p)
		}
	}
	publicaciones.OrdenarPorFecha(out)
	return out, nil
}

func (r *publicacionesRepo) CountReunidas(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.items {
		if !p.Activa && !p.EnTransito {
			n++
		}
	}
	return n, nil
}
