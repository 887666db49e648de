package publicaciones

import "time"

// ViewerKind clasifica al caller en tres variantes: anónimo, autenticado
// o demo. El modo demo es una variante explícita, no un usuario especial.
type ViewerKind int

const (
	ViewerAnonimo ViewerKind = iota
	ViewerAutenticado
	ViewerDemo
)

type Viewer struct {
	Kind   ViewerKind
	UserID string // solo con ViewerAutenticado
}

func Anonimo() Viewer { return Viewer{Kind: ViewerAnonimo} }

func Autenticado(id string) Viewer { return Viewer{Kind: ViewerAutenticado, UserID: id} }

func Demo() Viewer { return Viewer{Kind: ViewerDemo} }

// ContactoPublico es el contacto tal como sale al caller.
type ContactoPublico struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// PublicacionPublica es la vista redactada de una publicación.
// Los contactos van omitidos (no enmascarados) para viewers anónimos,
// con RequiereAuth como señal de que hay que autenticarse para verlos.
type PublicacionPublica struct {
	ID          string  `json:"id"`
	Especie     Especie `json:"especie"`
	Raza        string  `json:"raza"`
	Sexo        Sexo    `json:"sexo"`
	Color       string  `json:"color"`
	Descripcion string  `json:"descripcion"`
	ImagenURL   string  `json:"imagenUrl"`

	Ubicacion        string    `json:"ubicacion"`
	FechaEncuentro   time.Time `json:"fechaEncuentro"`
	FechaPublicacion time.Time `json:"fechaPublicacion"`

	UsuarioID string `json:"usuarioId"`

	Activa          bool          `json:"activa"`
	EnTransito      bool          `json:"enTransito"`
	TransitoUrgente bool          `json:"transitoUrgente"`
	MotivoCierre    *MotivoCierre `json:"motivoCierre,omitempty"`

	Contacto         *ContactoPublico `json:"contacto,omitempty"`
	TransitoContacto *ContactoPublico `json:"transitoContacto,omitempty"`
	RequiereAuth     bool             `json:"requiereAuth,omitempty"`
}

// Redact arma la vista pública de p según el viewer. Función pura.
//
// Regla única: contactos visibles para autenticados y demo, ocultos para
// anónimos. No hay visibilidad extra por ser dueño.
func Redact(p Publicacion, v Viewer) PublicacionPublica {
	out := PublicacionPublica{
		ID:               p.ID,
		Especie:          p.Especie,
		Raza:             p.Raza,
		Sexo:             p.Sexo,
		Color:            p.Color,
		Descripcion:      p.Descripcion,
		ImagenURL:        p.ImagenURL,
		Ubicacion:        p.Ubicacion,
		FechaEncuentro:   p.FechaEncuentro,
		FechaPublicacion: p.FechaPublicacion,
		UsuarioID:        p.UsuarioID,
		Activa:           p.Activa,
		EnTransito:       p.EnTransito,
		TransitoUrgente:  p.TransitoUrgente,
		MotivoCierre:     p.MotivoCierre,
	}

	if v.Kind == ViewerAnonimo {
		out.RequiereAuth = true
		return out
	}

	out.Contacto = &ContactoPublico{
		Nombre:   p.Contacto.Nombre,
		Telefono: p.Contacto.Telefono,
		Email:    p.Contacto.Email,
	}
	if p.TransitoContacto != nil {
		out.TransitoContacto = &ContactoPublico{
			Nombre:   p.TransitoContacto.Nombre,
			Telefono: p.TransitoContacto.Telefono,
			Email:    p.TransitoContacto.Email,
		}
	}
	return out
}
