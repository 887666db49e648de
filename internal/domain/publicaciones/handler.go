package publicaciones

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/middleware"
	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/publicaciones", func(pr chi.Router) {
		pr.Get("/", listarHandler(svc, log))
		pr.Post("/", crearHandler(svc, log))
		pr.Get("/{id}", getHandler(svc, log))
		pr.Patch("/{id}", actualizarHandler(svc, log))
		pr.Post("/{id}/cerrar", cerrarHandler(svc, log))
	})

	// Publicaciones activas del usuario autenticado
	r.Get("/me/publicaciones", misPublicacionesHandler(svc, log))

	r.Get("/stats", statsHandler(svc, log))
}

type contactoRequest struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

type crearRequest struct {
	Especie     string `json:"especie"`
	Raza        string `json:"raza"`
	Sexo        string `json:"sexo"`
	Color       string `json:"color"`
	Descripcion string `json:"descripcion"`
	ImagenURL   string `json:"imagenUrl"`

	Ubicacion      string `json:"ubicacion"`
	FechaEncuentro string `json:"fechaEncuentro"` // YYYY-MM-DD

	ContactoNombre   string `json:"contactoNombre"`
	ContactoTelefono string `json:"contactoTelefono"`
	ContactoEmail    string `json:"contactoEmail"`

	TransitoUrgente bool `json:"transitoUrgente"`
}

// actualizarRequest es el PATCH permitido. Punteros: nil = no tocar.
// No hay campos id/usuarioId; DisallowUnknownFields los rechaza con 400.
type actualizarRequest struct {
	Raza             *string `json:"raza"`
	Color            *string `json:"color"`
	Descripcion      *string `json:"descripcion"`
	ImagenURL        *string `json:"imagenUrl"`
	Ubicacion        *string `json:"ubicacion"`
	ContactoNombre   *string `json:"contactoNombre"`
	ContactoTelefono *string `json:"contactoTelefono"`
	ContactoEmail    *string `json:"contactoEmail"`
	TransitoUrgente  *bool   `json:"transitoUrgente"`
}

type cerrarRequest struct {
	Motivo           string           `json:"motivo"`
	TransitoContacto *contactoRequest `json:"transitoContacto"`
}

// viewerFrom clasifica el request: autenticado > demo > anónimo.
func viewerFrom(r *http.Request) Viewer {
	if claims, ok := middleware.GetClaims(r.Context()); ok && strings.TrimSpace(claims.UserID) != "" {
		return Autenticado(claims.UserID)
	}
	if middleware.IsDemo(r.Context()) {
		return Demo()
	}
	return Anonimo()
}

// listarHandler godoc
// @Summary Listar publicaciones con filtros opcionales
// @Param especie query string false "perro|gato|otro"
// @Param sexo query string false "macho|hembra|desconocido"
// @Param ubicacion query string false "substring, case-insensitive"
// @Param transitoUrgente query bool false "solo tránsitos urgentes"
// @Param soloEnTransito query bool false "solo en tránsito"
// @Success 200 {array} PublicacionPublica
// @Router /publicaciones [get]
func listarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filtros{
			Especie:         Especie(strings.TrimSpace(q.Get("especie"))),
			Sexo:            Sexo(strings.TrimSpace(q.Get("sexo"))),
			Ubicacion:       strings.TrimSpace(q.Get("ubicacion")),
			TransitoUrgente: q.Get("transitoUrgente") == "true",
			SoloEnTransito:  q.Get("soloEnTransito") == "true",
		}
		// "todos" llega desde los selects del frontend = sin filtro
		if f.Especie == "todos" {
			f.Especie = ""
		}
		if f.Sexo == "todos" {
			f.Sexo = ""
		}
		if f.Especie != "" && !EsEspecieValida(f.Especie) {
			writeError(w, http.StatusBadRequest, "especie invalida")
			return
		}
		if f.Sexo != "" && !EsSexoValido(f.Sexo) {
			writeError(w, http.StatusBadRequest, "sexo invalido")
			return
		}

		items, err := svc.Listar(r.Context(), f)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		viewer := viewerFrom(r)
		out := make([]PublicacionPublica, 0, len(items))
		for _, p := range items {
			out = append(out, Redact(p, viewer))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getHandler godoc
// @Summary Obtener una publicación por id
// @Param id path string true "id de la publicación"
// @Success 200 {object} PublicacionPublica
// @Failure 404 {object} map[string]string
// @Router /publicaciones/{id} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, Redact(p, viewerFrom(r)))
	}
}

// crearHandler godoc
// @Summary Crear una publicación (requiere auth; el dueño es el caller)
// @Success 201 {object} PublicacionPublica
// @Router /publicaciones [post]
func crearHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "no autenticado")
			return
		}

		var req crearRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "json invalido")
			return
		}

		var fe time.Time
		if strings.TrimSpace(req.FechaEncuentro) != "" {
			t, err := time.Parse("2006-01-02", req.FechaEncuentro)
			if err != nil {
				writeError(w, http.StatusBadRequest, "fechaEncuentro debe ser YYYY-MM-DD")
				return
			}
			fe = t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Especie:        req.Especie,
			Raza:           req.Raza,
			Sexo:           req.Sexo,
			Color:          req.Color,
			Descripcion:    req.Descripcion,
			ImagenURL:      req.ImagenURL,
			Ubicacion:      req.Ubicacion,
			FechaEncuentro: fe,
			Contacto: Contacto{
				Nombre:   req.ContactoNombre,
				Telefono: req.ContactoTelefono,
				Email:    req.ContactoEmail,
			},
			TransitoUrgente: req.TransitoUrgente,
		})
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, Redact(p, Autenticado(claims.UserID)))
	}
}

// actualizarHandler godoc
// @Summary Editar campos de una publicación (solo el dueño)
// @Param id path string true "id de la publicación"
// @Success 200 {object} PublicacionPublica
// @Router /publicaciones/{id} [patch]
func actualizarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "no autenticado")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req actualizarRequest
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "json invalido")
			return
		}

		in := UpdateInput{
			Raza:            req.Raza,
			Color:           req.Color,
			Descripcion:     req.Descripcion,
			ImagenURL:       req.ImagenURL,
			Ubicacion:       req.Ubicacion,
			TransitoUrgente: req.TransitoUrgente,
		}
		// El contacto se reemplaza entero: mandar uno de los tres campos
		// exige mandar los tres.
		if req.ContactoNombre != nil || req.ContactoTelefono != nil || req.ContactoEmail != nil {
			c := Contacto{}
			if req.ContactoNombre != nil {
				c.Nombre = *req.ContactoNombre
			}
			if req.ContactoTelefono != nil {
				c.Telefono = *req.ContactoTelefono
			}
			if req.ContactoEmail != nil {
				c.Email = *req.ContactoEmail
			}
			in.Contacto = &c
		}

		p, err := svc.Actualizar(r.Context(), chi.URLParam(r, "id"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, Redact(p, Autenticado(claims.UserID)))
	}
}

// cerrarHandler godoc
// @Summary Cerrar una publicación con un motivo (solo el dueño)
// @Param id path string true "id de la publicación"
// @Success 200 {object} PublicacionPublica
// @Router /publicaciones/{id}/cerrar [post]
func cerrarHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "no autenticado")
			return
		}

		var req cerrarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "json invalido")
			return
		}

		var contacto *Contacto
		if req.TransitoContacto != nil {
			contacto = &Contacto{
				Nombre:   req.TransitoContacto.Nombre,
				Telefono: req.TransitoContacto.Telefono,
				Email:    req.TransitoContacto.Email,
			}
		}

		p, err := svc.Cerrar(r.Context(), chi.URLParam(r, "id"), claims.UserID, MotivoCierre(req.Motivo), contacto)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, Redact(p, Autenticado(claims.UserID)))
	}
}

func misPublicacionesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "no autenticado")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeDomainError(w, log, err)
			return
		}

		out := make([]PublicacionPublica, 0, len(items))
		for _, p := range items {
			out = append(out, Redact(p, Autenticado(claims.UserID)))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// statsHandler godoc
// @Summary Contador de mascotas reunidas (cierres definitivos)
// @Success 200 {object} map[string]int
// @Router /stats [get]
func statsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.ContarReunidas(r.Context())
		if err != nil {
			writeDomainError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"mascotasReunidas": n})
	}
}

func writeDomainError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "publicacion no encontrada")
	case errors.Is(err, ErrNoAutorizado):
		writeError(w, http.StatusForbidden, "no autorizado")
	case errors.Is(err, ErrEstadoInvalido):
		writeError(w, http.StatusConflict, "la publicacion ya fue cerrada con otro motivo")
	default:
		// Falla del storage u otro error no contemplado: nunca 404
		log.Error("unhandled error", map[string]any{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "error interno")
	}
}

// writeJSON/writeError duplicados a propósito por módulo (ver usuarios);
// recién vale extraer un helper si aparece un tercer módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
