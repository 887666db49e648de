package publicaciones

import (
	"testing"
	"time"
)

func publicacionConContactos() Publicacion {
	motivo := MotivoEnTransito
	return Publicacion{
		ID:               "pub-1",
		Especie:          EspecieGato,
		Raza:             RazaSiames,
		Sexo:             SexoHembra,
		Ubicacion:        "Belgrano, CABA",
		FechaPublicacion: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Contacto: Contacto{
			Nombre:   "Ana",
			Telefono: "11 4444 0000",
			Email:    "ana@example.com",
		},
		UsuarioID:    "owner-1",
		EnTransito:   true,
		MotivoCierre: &motivo,
		TransitoContacto: &Contacto{
			Nombre:   "María",
			Telefono: "11 9876 5432",
			Email:    "maria@example.com",
		},
	}
}

func TestRedact_Anonimo_OmiteContactos(t *testing.T) {
	out := Redact(publicacionConContactos(), Anonimo())

	if out.Contacto != nil {
		t.Fatalf("anonymous viewer must not see contacto, got %+v", out.Contacto)
	}
	if out.TransitoContacto != nil {
		t.Fatalf("anonymous viewer must not see transito contacto, got %+v", out.TransitoContacto)
	}
	if !out.RequiereAuth {
		t.Fatalf("anonymous viewer must be told auth is required")
	}

	// El resto sigue visible
	if out.ID != "pub-1" || out.Ubicacion != "Belgrano, CABA" || !out.EnTransito {
		t.Fatalf("non-contact fields must stay visible, got %+v", out)
	}
}

func TestRedact_Autenticado_VeContactos_SinImportarOwner(t *testing.T) {
	p := publicacionConContactos()

	for _, userID := range []string{"owner-1", "cualquier-otro"} {
		out := Redact(p, Autenticado(userID))

		if out.Contacto == nil || out.Contacto.Email != "ana@example.com" {
			t.Fatalf("authenticated viewer %s must see contacto, got %+v", userID, out.Contacto)
		}
		if out.TransitoContacto == nil || out.TransitoContacto.Nombre != "María" {
			t.Fatalf("authenticated viewer %s must see transito contacto, got %+v", userID, out.TransitoContacto)
		}
		if out.RequiereAuth {
			t.Fatalf("authenticated viewer must not get requiereAuth")
		}
	}
}

func TestRedact_Demo_VeContactos(t *testing.T) {
	out := Redact(publicacionConContactos(), Demo())

	if out.Contacto == nil || out.Contacto.Telefono != "11 4444 0000" {
		t.Fatalf("demo viewer must see contacto, got %+v", out.Contacto)
	}
	if out.RequiereAuth {
		t.Fatalf("demo viewer must not get requiereAuth")
	}
}

func TestRedact_SinTransitoContacto_NoLoInventa(t *testing.T) {
	p := publicacionConContactos()
	p.TransitoContacto = nil

	out := Redact(p, Autenticado("x"))
	if out.TransitoContacto != nil {
		t.Fatalf("expected nil transito contacto, got %+v", out.TransitoContacto)
	}
}
