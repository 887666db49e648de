package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/eugeniosaintemarie/encontratumascota/internal/adapters/blob/vercelblob"
	"github.com/eugeniosaintemarie/encontratumascota/internal/router"
)

// Tests end-to-end contra el router completo con storage in-memory y
// auth en modo dev (X-Debug-User-ID).

func doReq(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
}

func crearBody() map[string]any {
	return map[string]any{
		"especie":          "perro",
		"raza":             "mestizo",
		"sexo":             "macho",
		"color":            "marrón",
		"descripcion":      "collar rojo, muy manso",
		"ubicacion":        "Caballito, CABA",
		"fechaEncuentro":   "2026-03-10",
		"contactoNombre":   "Ana",
		"contactoTelefono": "11 4444 0000",
		"contactoEmail":    "ana@example.com",
	}
}

func crearPublicacion(t *testing.T, h http.Handler, userID string) map[string]any {
	t.Helper()

	rec := doReq(t, h, http.MethodPost, "/publicaciones", userID, crearBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	var out map[string]any
	decodeBody(t, rec, &out)
	return out
}

func TestRouter_Health(t *testing.T) {
	h := router.NewRouter(router.Options{})
	rec := doReq(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
}

func TestRouter_Crear_SinAuth(t *testing.T) {
	h := router.NewRouter(router.Options{})
	rec := doReq(t, h, http.MethodPost, "/publicaciones", "", crearBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (body %s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_VisibilidadDeContactos(t *testing.T) {
	h := router.NewRouter(router.Options{})
	created := crearPublicacion(t, h, "user-1")
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("create response without id: %+v", created)
	}

	// Anónimo: lista sin contactos y con requiereAuth
	rec := doReq(t, h, http.MethodGet, "/publicaciones", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var list []map[string]any
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 publicacion, got %d", len(list))
	}
	if _, ok := list[0]["contacto"]; ok {
		t.Fatalf("anonymous list leaked contacto: %+v", list[0])
	}
	if list[0]["requiereAuth"] != true {
		t.Fatalf("anonymous list must flag requiereAuth: %+v", list[0])
	}

	// Autenticado (aunque no sea el dueño): contactos visibles
	rec = doReq(t, h, http.MethodGet, "/publicaciones/"+id, "otro-user", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	contacto, ok := got["contacto"].(map[string]any)
	if !ok {
		t.Fatalf("authenticated get must include contacto: %+v", got)
	}
	if contacto["email"] != "ana@example.com" {
		t.Fatalf("unexpected contacto: %+v", contacto)
	}
	if _, ok := got["requiereAuth"]; ok {
		t.Fatalf("authenticated get must not flag requiereAuth")
	}
}

func TestRouter_Actualizar_RechazaCamposDesconocidos(t *testing.T) {
	h := router.NewRouter(router.Options{})
	created := crearPublicacion(t, h, "user-1")
	id := created["id"].(string)

	// usuarioId no es un campo editable: 400 por DisallowUnknownFields
	rec := doReq(t, h, http.MethodPatch, "/publicaciones/"+id, "user-1", map[string]any{
		"usuarioId": "atacante",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	rec = doReq(t, h, http.MethodPatch, "/publicaciones/"+id, "user-1", map[string]any{
		"descripcion": "ahora con chip",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d, body %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	if got["descripcion"] != "ahora con chip" {
		t.Fatalf("descripcion not updated: %+v", got)
	}
	if got["usuarioId"] != "user-1" {
		t.Fatalf("owner must not change: %+v", got)
	}
}

func TestRouter_Actualizar_SoloDueno(t *testing.T) {
	h := router.NewRouter(router.Options{})
	created := crearPublicacion(t, h, "user-1")
	id := created["id"].(string)

	rec := doReq(t, h, http.MethodPatch, "/publicaciones/"+id, "user-2", map[string]any{
		"descripcion": "x",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_Cerrar(t *testing.T) {
	h := router.NewRouter(router.Options{})
	created := crearPublicacion(t, h, "user-1")
	id := created["id"].(string)

	// No dueño
	rec := doReq(t, h, http.MethodPost, "/publicaciones/"+id+"/cerrar", "user-2", map[string]any{
		"motivo": "adoptado",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner close: expected 403, got %d", rec.Code)
	}

	// Tránsito sin contacto
	rec = doReq(t, h, http.MethodPost, "/publicaciones/"+id+"/cerrar", "user-1", map[string]any{
		"motivo": "en_transito",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("transito without contacto: expected 400, got %d", rec.Code)
	}

	// Cierre válido en tránsito
	rec = doReq(t, h, http.MethodPost, "/publicaciones/"+id+"/cerrar", "user-1", map[string]any{
		"motivo": "en_transito",
		"transitoContacto": map[string]any{
			"nombre":   "María",
			"telefono": "11 9876 5432",
			"email":    "maria@example.com",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("close: status %d, body %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	if got["enTransito"] != true || got["motivoCierre"] != "en_transito" {
		t.Fatalf("unexpected close state: %+v", got)
	}

	// Re-cierre con el mismo motivo: idempotente
	rec = doReq(t, h, http.MethodPost, "/publicaciones/"+id+"/cerrar", "user-1", map[string]any{
		"motivo": "en_transito",
		"transitoContacto": map[string]any{
			"nombre":   "María",
			"telefono": "11 9876 5432",
			"email":    "maria@example.com",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("idempotent re-close: status %d", rec.Code)
	}

	// Re-cierre con otro motivo: conflicto
	rec = doReq(t, h, http.MethodPost, "/publicaciones/"+id+"/cerrar", "user-1", map[string]any{
		"motivo": "adoptado",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("conflicting re-close: expected 409, got %d", rec.Code)
	}
}

func TestRouter_FiltroSoloEnTransito_YStats(t *testing.T) {
	h := router.NewRouter(router.Options{})

	abierta := crearPublicacion(t, h, "user-1")
	transitada := crearPublicacion(t, h, "user-1")
	adoptada := crearPublicacion(t, h, "user-1")

	rec := doReq(t, h, http.MethodPost, "/publicaciones/"+transitada["id"].(string)+"/cerrar", "user-1", map[string]any{
		"motivo": "en_transito",
		"transitoContacto": map[string]any{
			"nombre":   "María",
			"telefono": "11 9876 5432",
			"email":    "maria@example.com",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("close transito: status %d", rec.Code)
	}
	rec = doReq(t, h, http.MethodPost, "/publicaciones/"+adoptada["id"].(string)+"/cerrar", "user-1", map[string]any{
		"motivo": "encontrado_dueno",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("close adoptada: status %d", rec.Code)
	}

	// Scope default: activa o en tránsito (la reunida queda afuera)
	rec = doReq(t, h, http.MethodGet, "/publicaciones", "", nil)
	var list []map[string]any
	decodeBody(t, rec, &list)
	if len(list) != 2 {
		t.Fatalf("default scope: expected 2, got %d", len(list))
	}

	rec = doReq(t, h, http.MethodGet, "/publicaciones?soloEnTransito=true", "", nil)
	list = nil
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0]["id"] != transitada["id"] {
		t.Fatalf("soloEnTransito: unexpected result %+v", list)
	}

	// La abierta sigue en /me/publicaciones; la cerrada no
	rec = doReq(t, h, http.MethodGet, "/me/publicaciones", "user-1", nil)
	list = nil
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0]["id"] != abierta["id"] {
		t.Fatalf("me/publicaciones: unexpected result %+v", list)
	}

	rec = doReq(t, h, http.MethodGet, "/stats", "", nil)
	var stats map[string]int
	decodeBody(t, rec, &stats)
	if stats["mascotasReunidas"] != 1 {
		t.Fatalf("stats: expected 1 reunida, got %+v", stats)
	}
}

func TestRouter_FiltrosInvalidos(t *testing.T) {
	h := router.NewRouter(router.Options{})

	rec := doReq(t, h, http.MethodGet, "/publicaciones?especie=dinosaurio", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad especie, got %d", rec.Code)
	}

	// "todos" no es un filtro
	rec = doReq(t, h, http.MethodGet, "/publicaciones?especie=todos&sexo=todos", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("'todos' must be accepted as no-filter, got %d", rec.Code)
	}
}

func TestRouter_ModoDemo(t *testing.T) {
	h := router.NewRouter(router.Options{DemoMode: true})
	created := crearPublicacion(t, h, "user-1")
	id := created["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/publicaciones/"+id, nil)
	req.Header.Set("X-Demo-Mode", "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got map[string]any
	decodeBody(t, rec, &got)
	if _, ok := got["contacto"]; !ok {
		t.Fatalf("demo viewer must see contacto: %+v", got)
	}

	// Con el toggle apagado el header no hace nada
	h2 := router.NewRouter(router.Options{DemoMode: false})
	created = crearPublicacion(t, h2, "user-1")

	req = httptest.NewRequest(http.MethodGet, "/publicaciones/"+created["id"].(string), nil)
	req.Header.Set("X-Demo-Mode", "1")
	rec = httptest.NewRecorder()
	h2.ServeHTTP(rec, req)

	got = nil
	decodeBody(t, rec, &got)
	if _, ok := got["contacto"]; ok {
		t.Fatalf("demo header without toggle must stay anonymous: %+v", got)
	}
}

func TestRouter_Registro(t *testing.T) {
	h := router.NewRouter(router.Options{})

	rec := doReq(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"nombreUsuario": "euge",
		"email":         "euge@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	decodeBody(t, rec, &got)
	if got["email"] != "euge@example.com" {
		t.Fatalf("unexpected register response: %+v", got)
	}

	rec = doReq(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"nombreUsuario": "euge2",
		"email":         "euge@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate email: expected 409, got %d", rec.Code)
	}
}

// fakeBlob registra el último Put y devuelve una URL fija.
type fakeBlob struct {
	lastFilename string
	lastSize     int64
}

func (f *fakeBlob) Put(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	f.lastFilename = filename
	f.lastSize = size
	_, _ = io.Copy(io.Discard, body)
	return "https://blob.example/" + filename, nil
}

func multipartImage(t *testing.T, payload []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="foto.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestRouter_Upload_SinBackend(t *testing.T) {
	h := router.NewRouter(router.Options{})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("X-Debug-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("upload without backend: expected 503, got %d", rec.Code)
	}
}

func TestRouter_Upload_OK(t *testing.T) {
	store := &fakeBlob{}
	h := router.NewRouter(router.Options{Blob: store})

	body, contentType := multipartImage(t, []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Debug-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d, body %s", rec.Code, rec.Body.String())
	}
	var got map[string]string
	decodeBody(t, rec, &got)
	if !strings.HasPrefix(got["url"], "https://blob.example/mascotas/") {
		t.Fatalf("unexpected url: %+v", got)
	}
	if store.lastSize != int64(len("png-bytes")) {
		t.Fatalf("unexpected size forwarded to store: %d", store.lastSize)
	}
}

// Un body que excede el techo se corta al parsear, sin llegar al store.
func TestRouter_Upload_BodyExcedido(t *testing.T) {
	store := &fakeBlob{}
	h := router.NewRouter(router.Options{Blob: store})

	oversized := bytes.Repeat([]byte("x"), int(vercelblob.MaxSizeBytes)+(64<<10))
	body, contentType := multipartImage(t, oversized)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Debug-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized upload: expected 400, got %d (body %s)", rec.Code, rec.Body.String())
	}
	if store.lastFilename != "" {
		t.Fatalf("oversized upload must not reach the store, got Put(%q)", store.lastFilename)
	}
}

func TestRouter_Upload_UsuarioRestringido(t *testing.T) {
	store := &fakeBlob{}
	h := router.NewRouter(router.Options{Blob: store})

	body, contentType := multipartImage(t, []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Debug-User-ID", "demo")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("restricted user: expected 403, got %d", rec.Code)
	}
}
