package usuarios

import "time"

// Usuario es el perfil mínimo que el resto del sistema consume.
// Las credenciales viven en el proveedor de auth, no acá.
type Usuario struct {
	ID            string
	NombreUsuario string
	Email         string
	FechaRegistro time.Time
}
