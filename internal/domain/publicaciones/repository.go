package publicaciones

import "context"

// Filtros son los criterios opcionales de búsqueda. Zero value = sin filtro.
// El matching es conjuntivo: una publicación debe cumplir todos los
// criterios presentes.
type Filtros struct {
	Especie         Especie // "" = todas
	Sexo            Sexo    // "" = todos
	Ubicacion       string  // substring case-insensitive
	TransitoUrgente bool
	SoloEnTransito  bool

	// IncluirPrueba lo setea el servicio según modo demo; no viene del request.
	IncluirPrueba bool
}

// Repository es el contrato de persistencia de publicaciones.
//
// List devuelve orden descendente por FechaPublicacion; los empates
// conservan el orden de inserción (sort estable). Las operaciones son
// atómicas a nivel de fila; no se requieren transacciones multi-fila.
type Repository interface {
	Create(ctx context.Context, p Publicacion) error
	GetByID(ctx context.Context, id string) (Publicacion, error)
	Update(ctx context.Context, p Publicacion) error
	List(ctx context.Context, f Filtros) ([]Publicacion, error)

	// ListByOwner devuelve solo las activas del usuario, más recientes primero.
	ListByOwner(ctx context.Context, usuarioID string) ([]Publicacion, error)

	// CountReunidas cuenta cierres definitivos (activa=false y en_transito=false).
	CountReunidas(ctx context.Context) (int, error)
}
