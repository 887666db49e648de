package publicaciones

import "time"

// Especie define las especies soportadas.
// @Enum perro, gato, otro
type Especie string

const (
	EspeciePerro Especie = "perro"
	EspecieGato  Especie = "gato"
	EspecieOtro  Especie = "otro"
)

// Razas de perro.
const (
	RazaMestizoPerro = "mestizo_perro"
	RazaLabrador     = "labrador"
	RazaGolden       = "golden_retriever"
	RazaPastorAleman = "pastor_aleman"
	RazaBulldog      = "bulldog"
	RazaCaniche      = "caniche"
	RazaBeagle       = "beagle"
	RazaOtroPerro    = "otro_perro"
)

// Razas de gato.
const (
	RazaMestizoGato  = "mestizo_gato"
	RazaSiames       = "siames"
	RazaPersa        = "persa"
	RazaMaineCoon    = "maine_coon"
	RazaComunEuropeo = "comun_europeo"
	RazaOtroGato     = "otro_gato"
)

// RazaOtroAnimal aplica cuando especie = otro.
const RazaOtroAnimal = "otro_animal"

// Sexo define el sexo de la mascota.
// @Enum macho, hembra, desconocido
type Sexo string

const (
	SexoMacho       Sexo = "macho"
	SexoHembra      Sexo = "hembra"
	SexoDesconocido Sexo = "desconocido"
)

// MotivoCierre define por qué se cerró una publicación.
// @Enum encontrado_dueno, adoptado, en_transito, otro
type MotivoCierre string

const (
	MotivoEncontradoDueno MotivoCierre = "encontrado_dueno"
	MotivoAdoptado        MotivoCierre = "adoptado"
	MotivoEnTransito      MotivoCierre = "en_transito"
	MotivoOtro            MotivoCierre = "otro"
)

// Contacto agrupa los datos de contacto de una persona
// (quien encontró la mascota, o quien la transita).
type Contacto struct {
	Nombre   string
	Telefono string
	Email    string
}

// Publicacion representa un aviso de mascota encontrada.
//
// Estado: abierta mientras Activa=true y MotivoCierre=nil. Al cerrar,
// Activa pasa a false y MotivoCierre queda seteado; EnTransito solo es
// true cuando el motivo fue en_transito, y en ese caso TransitoContacto
// es no-nil (se escribe una única vez).
type Publicacion struct {
	ID string

	// Datos de la mascota (inline, sin tabla separada)
	Especie     Especie
	Raza        string // según especie (ver constantes Raza*)
	Sexo        Sexo
	Color       string
	Descripcion string
	ImagenURL   string // puede ser vacía

	// Contexto
	Ubicacion        string
	FechaEncuentro   time.Time
	FechaPublicacion time.Time // la asigna el servidor al crear

	// Contacto de quien encontró la mascota
	Contacto Contacto

	// Dueño de la publicación (inmutable)
	UsuarioID string

	// Estado
	Activa          bool
	EnTransito      bool
	TransitoUrgente bool
	MotivoCierre    *MotivoCierre // nil = abierta

	// Contacto de tránsito; solo cuando MotivoCierre = en_transito
	TransitoContacto *Contacto

	// Filas de prueba/seed: ocultas salvo en modo demo
	EsPrueba bool
}

// Abierta indica si la publicación sigue abierta.
func (p Publicacion) Abierta() bool {
	return p.MotivoCierre == nil
}

func EsEspecieValida(e Especie) bool {
	switch e {
	case EspeciePerro, EspecieGato, EspecieOtro:
		return true
	}
	return false
}

func EsSexoValido(s Sexo) bool {
	switch s {
	case SexoMacho, SexoHembra, SexoDesconocido:
		return true
	}
	return false
}

func EsMotivoValido(m MotivoCierre) bool {
	switch m {
	case MotivoEncontradoDueno, MotivoAdoptado, MotivoEnTransito, MotivoOtro:
		return true
	}
	return false
}
