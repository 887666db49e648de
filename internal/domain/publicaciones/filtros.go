package publicaciones

import (
	"sort"
	"strings"
)

// Matches evalúa los criterios sobre una publicación (conjuntivo).
//
// Alcance por defecto: activa O en tránsito — solo quedan afuera los
// cierres definitivos. Con SoloEnTransito, únicamente en tránsito.
func (f Filtros) Matches(p Publicacion) bool {
	if p.EsPrueba && !f.IncluirPrueba {
		return false
	}

	if f.SoloEnTransito {
		if !p.EnTransito {
			return false
		}
	} else if !p.Activa && !p.EnTransito {
		return false
	}

	if f.Especie != "" && p.Especie != f.Especie {
		return false
	}
	if f.Sexo != "" && p.Sexo != f.Sexo {
		return false
	}
	if f.Ubicacion != "" && !strings.Contains(strings.ToLower(p.Ubicacion), strings.ToLower(f.Ubicacion)) {
		return false
	}
	if f.TransitoUrgente && !p.TransitoUrgente {
		return false
	}
	return true
}

// OrdenarPorFecha ordena in-place: FechaPublicacion descendente, empates
// conservan el orden previo del slice (sort estable).
func OrdenarPorFecha(items []Publicacion) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].FechaPublicacion.After(items[j].FechaPublicacion)
	})
}
