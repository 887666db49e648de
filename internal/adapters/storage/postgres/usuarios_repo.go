package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/usuarios"
)

type UsuariosRepo struct {
	db *sql.DB
}

func NewUsuariosRepo(db *sql.DB) *UsuariosRepo {
	return &UsuariosRepo{db: db}
}

func (r *UsuariosRepo) Create(ctx context.Context, u usuarios.Usuario) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usuarios (id, nombre_usuario, email, fecha_registro)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.NombreUsuario, u.Email, u.FechaRegistro)
	return err
}

func (r *UsuariosRepo) GetByID(ctx context.Context, id string) (usuarios.Usuario, error) {
	return r.get(ctx, `WHERE id = $1`, strings.TrimSpace(id))
}

func (r *UsuariosRepo) GetByEmail(ctx context.Context, email string) (usuarios.Usuario, error) {
	return r.get(ctx, `WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsuariosRepo) get(ctx context.Context, where, arg string) (usuarios.Usuario, error) {
	if arg == "" {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, nombre_usuario, email, fecha_registro
		FROM usuarios `+where, arg)

	var u usuarios.Usuario
	if err := row.Scan(&u.ID, &u.NombreUsuario, &u.Email, &u.FechaRegistro); err != nil {
		if err == sql.ErrNoRows {
			return usuarios.Usuario{}, usuarios.ErrNotFound
		}
		return usuarios.Usuario{}, err
	}
	return u, nil
}
