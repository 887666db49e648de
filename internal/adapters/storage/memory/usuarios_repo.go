package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/usuarios"
)

type usuariosRepo struct {
	mu      sync.RWMutex
	byID    map[string]usuarios.Usuario
	byEmail map[string]string // email -> id
}

func NewUsuariosRepo() usuarios.Repository {
	return &usuariosRepo{
		byID:    make(map[string]usuarios.Usuario),
		byEmail: make(map[string]string),
	}
}

func (r *usuariosRepo) Create(ctx context.Context, u usuarios.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("usuario id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("usuario already exists")
	}
	email := strings.ToLower(u.Email)
	if _, exists := r.byEmail[email]; exists {
		return errors.New("email already registered")
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func (r *usuariosRepo) GetByID(ctx context.Context, id string) (usuarios.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	return u, nil
}

func (r *usuariosRepo) GetByEmail(ctx context.Context, email string) (usuarios.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	return r.byID[id], nil
}
