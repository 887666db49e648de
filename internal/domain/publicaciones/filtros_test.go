package publicaciones

import (
	"testing"
	"time"
)

func abierta(id string, fecha time.Time) Publicacion {
	return Publicacion{
		ID:               id,
		Especie:          EspeciePerro,
		Sexo:             SexoMacho,
		Ubicacion:        "Caballito, CABA",
		FechaPublicacion: fecha,
		Activa:           true,
	}
}

func TestFiltros_Matches_Conjuntivo(t *testing.T) {
	p := abierta("p1", time.Now())
	p.Sexo = SexoHembra
	p.TransitoUrgente = true

	cases := []struct {
		name string
		f    Filtros
		want bool
	}{
		{"sin filtros", Filtros{}, true},
		{"especie match", Filtros{Especie: EspeciePerro}, true},
		{"especie no match", Filtros{Especie: EspecieGato}, false},
		{"sexo match", Filtros{Sexo: SexoHembra}, true},
		{"ubicacion substring case-insensitive", Filtros{Ubicacion: "caballito"}, true},
		{"ubicacion no match", Filtros{Ubicacion: "rosario"}, false},
		{"urgente", Filtros{TransitoUrgente: true}, true},
		{"todos juntos", Filtros{Especie: EspeciePerro, Sexo: SexoHembra, Ubicacion: "CABA", TransitoUrgente: true}, true},
		{"uno falla, falla todo", Filtros{Especie: EspeciePerro, Sexo: SexoMacho}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Matches(p); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFiltros_Matches_ScopePorDefecto(t *testing.T) {
	motivoAdoptado := MotivoAdoptado
	motivoTransito := MotivoEnTransito

	cerradaDefinitiva := abierta("c1", time.Now())
	cerradaDefinitiva.Activa = false
	cerradaDefinitiva.MotivoCierre = &motivoAdoptado

	enTransito := abierta("c2", time.Now())
	enTransito.Activa = false
	enTransito.EnTransito = true
	enTransito.MotivoCierre = &motivoTransito

	if (Filtros{}).Matches(cerradaDefinitiva) {
		t.Fatalf("cierre definitivo no debe aparecer en el scope default")
	}
	if !(Filtros{}).Matches(enTransito) {
		t.Fatalf("en tránsito debe aparecer en el scope default")
	}
	if (Filtros{SoloEnTransito: true}).Matches(cerradaDefinitiva) {
		t.Fatalf("cierre definitivo no es tránsito")
	}
	if !(Filtros{SoloEnTransito: true}).Matches(enTransito) {
		t.Fatalf("en tránsito debe aparecer con SoloEnTransito")
	}
}

func TestFiltros_Matches_EsPrueba(t *testing.T) {
	p := abierta("t1", time.Now())
	p.EsPrueba = true

	if (Filtros{}).Matches(p) {
		t.Fatalf("fila de prueba visible sin IncluirPrueba")
	}
	if !(Filtros{IncluirPrueba: true}).Matches(p) {
		t.Fatalf("fila de prueba oculta con IncluirPrueba")
	}
}

// Orden descendente por fecha; empates conservan orden de inserción.
func TestOrdenarPorFecha_EstableEnEmpates(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	items := []Publicacion{
		abierta("viejo", base.Add(-time.Hour)),
		abierta("empate-1", base),
		abierta("nuevo", base.Add(time.Hour)),
		abierta("empate-2", base),
		abierta("empate-3", base),
	}

	OrdenarPorFecha(items)

	want := []string{"nuevo", "empate-1", "empate-2", "empate-3", "viejo"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("posición %d: got %s, want %s (orden completo: %v)", i, items[i].ID, id, ids(items))
		}
	}

	// Repetir el sort no cambia nada (idempotente)
	OrdenarPorFecha(items)
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("re-sort cambió el orden en posición %d", i)
		}
	}
}
