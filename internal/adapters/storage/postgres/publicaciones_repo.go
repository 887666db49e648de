package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/publicaciones"
)

type PublicacionesRepo struct {
	db *sql.DB
}

func NewPublicacionesRepo(db *sql.DB) *PublicacionesRepo {
	return &PublicacionesRepo{db: db}
}

const publicacionColumns = `
	id, especie, raza, sexo, color, descripcion, imagen_url,
	ubicacion, fecha_encuentro, fecha_publicacion,
	contacto_nombre, contacto_telefono, contacto_email,
	usuario_id,
	activa, en_transito, transito_urgente, motivo_cierre,
	transito_contacto_nombre, transito_contacto_telefono, transito_contacto_email,
	es_prueba`

func (r *PublicacionesRepo) Create(ctx context.Context, p publicaciones.Publicacion) error {
	tcNombre, tcTelefono, tcEmail := toNullContacto(p.TransitoContacto)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO publicaciones (
			id, especie, raza, sexo, color, descripcion, imagen_url,
			ubicacion, fecha_encuentro, fecha_publicacion,
			contacto_nombre, contacto_telefono, contacto_email,
			usuario_id,
			activa, en_transito, transito_urgente, motivo_cierre,
			transito_contacto_nombre, transito_contacto_telefono, transito_contacto_email,
			es_prueba
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
	`,
		p.ID,
		string(p.Especie),
		p.Raza,
		string(p.Sexo),
		p.Color,
		p.Descripcion,
		p.ImagenURL,
		p.Ubicacion,
		p.FechaEncuentro,
		p.FechaPublicacion,
		p.Contacto.Nombre,
		p.Contacto.Telefono,
		p.Contacto.Email,
		p.UsuarioID,
		p.Activa,
		p.EnTransito,
		p.TransitoUrgente,
		toNullMotivo(p.MotivoCierre),
		tcNombre,
		tcTelefono,
		tcEmail,
		p.EsPrueba,
	)
	return err
}

func (r *PublicacionesRepo) Update(ctx context.Context, p publicaciones.Publicacion) error {
	tcNombre, tcTelefono, tcEmail := toNullContacto(p.TransitoContacto)

	// usuario_id y seq quedan fuera a propósito: el dueño y el orden de
	// inserción son inmutables.
	res, err := r.db.ExecContext(ctx, `
		UPDATE publicaciones
		SET
			especie = $2, raza = $3, sexo = $4, color = $5,
			descripcion = $6, imagen_url = $7, ubicacion = $8,
			fecha_encuentro = $9,
			contacto_nombre = $10, contacto_telefono = $11, contacto_email = $12,
			activa = $13, en_transito = $14, transito_urgente = $15,
			motivo_cierre = $16,
			transito_contacto_nombre = $17,
			transito_contacto_telefono = $18,
			transito_contacto_email = $19
		WHERE id = $1
	`,
		p.ID,
		string(p.Especie),
		p.Raza,
		string(p.Sexo),
		p.Color,
		p.Descripcion,
		p.ImagenURL,
		p.Ubicacion,
		p.FechaEncuentro,
		p.Contacto.Nombre,
		p.Contacto.Telefono,
		p.Contacto.Email,
		p.Activa,
		p.EnTransito,
		p.TransitoUrgente,
		toNullMotivo(p.MotivoCierre),
		tcNombre,
		tcTelefono,
		tcEmail,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return publicaciones.ErrNotFound
	}
	return nil
}

func (r *PublicacionesRepo) GetByID(ctx context.Context, id string) (publicaciones.Publicacion, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return publicaciones.Publicacion{}, publicaciones.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+publicacionColumns+`
		FROM publicaciones
		WHERE id = $1
	`, id)

	p, err := scanPublicacion(row)
	if err == sql.ErrNoRows {
		return publicaciones.Publicacion{}, publicaciones.ErrNotFound
	}
	return p, err
}

func (r *PublicacionesRepo) List(ctx context.Context, f publicaciones.Filtros) ([]publicaciones.Publicacion, error) {
	conds := make([]string, 0, 6)
	args := make([]any, 0, 4)

	if f.SoloEnTransito {
		conds = append(conds, "en_transito = TRUE")
	} else {
		conds = append(conds, "(activa OR en_transito)")
	}
	if !f.IncluirPrueba {
		conds = append(conds, "NOT es_prueba")
	}
	if f.Especie != "" {
		args = append(args, string(f.Especie))
		conds = append(conds, fmt.Sprintf("especie = $%d", len(args)))
	}
	if f.Sexo != "" {
		args = append(args, string(f.Sexo))
		conds = append(conds, fmt.Sprintf("sexo = $%d", len(args)))
	}
	if f.Ubicacion != "" {
		// Escapado para que %/_ del input se tomen literales, igual que
		// el matching por substring del backend in-memory.
		args = append(args, "%"+escapeLike(f.Ubicacion)+"%")
		conds = append(conds, fmt.Sprintf(`ubicacion ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if f.TransitoUrgente {
		conds = append(conds, "transito_urgente = TRUE")
	}

	query := `
		SELECT ` + publicacionColumns + `
		FROM publicaciones
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY fecha_publicacion DESC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPublicaciones(rows)
}

func (r *PublicacionesRepo) ListByOwner(ctx context.Context, usuarioID string) ([]publicaciones.Publicacion, error) {
	usuarioID = strings.TrimSpace(usuarioID)
	if usuarioID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+publicacionColumns+`
		FROM publicaciones
		WHERE usuario_id = $1 AND activa
		ORDER BY fecha_publicacion DESC, seq ASC
	`, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPublicaciones(rows)
}

func (r *PublicacionesRepo) CountReunidas(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM publicaciones
		WHERE NOT activa AND NOT en_transito
	`).Scan(&n)
	return n, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPublicacion(row rowScanner) (publicaciones.Publicacion, error) {
	var p publicaciones.Publicacion
	var especie, sexo string
	var motivo sql.NullString
	var tcNombre, tcTelefono, tcEmail sql.NullString

	err := row.Scan(
		&p.ID,
		&especie,
		&p.Raza,
		&sexo,
		&p.Color,
		&p.Descripcion,
		&p.ImagenURL,
		&p.Ubicacion,
		&p.FechaEncuentro,
		&p.FechaPublicacion,
		&p.Contacto.Nombre,
		&p.Contacto.Telefono,
		&p.Contacto.Email,
		&p.UsuarioID,
		&p.Activa,
		&p.EnTransito,
		&p.TransitoUrgente,
		&motivo,
		&tcNombre,
		&tcTelefono,
		&tcEmail,
		&p.EsPrueba,
	)
	if err != nil {
		return publicaciones.Publicacion{}, err
	}

	p.Especie = publicaciones.Especie(especie)
	p.Sexo = publicaciones.Sexo(sexo)

	if motivo.Valid {
		m := publicaciones.MotivoCierre(motivo.String)
		p.MotivoCierre = &m
	}
	if tcNombre.Valid {
		p.TransitoContacto = &publicaciones.Contacto{
			Nombre:   tcNombre.String,
			Telefono: tcTelefono.String,
			Email:    tcEmail.String,
		}
	}
	return p, nil
}

func collectPublicaciones(rows *sql.Rows) ([]publicaciones.Publicacion, error) {
	out := make([]publicaciones.Publicacion, 0)
	for rows.Next() {
		p, err := scanPublicacion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func toNullMotivo(m *publicaciones.MotivoCierre) sql.NullString {
	if m == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*m), Valid: true}
}

func toNullContacto(c *publicaciones.Contacto) (sql.NullString, sql.NullString, sql.NullString) {
	if c == nil {
		return sql.NullString{}, sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: c.Nombre, Valid: true},
		sql.NullString{String: c.Telefono, Valid: true},
		sql.NullString{String: c.Email, Valid: true}
}
