package auth

// Claims representa la identidad resuelta de una sesión.
type Claims struct {
	UserID        string
	NombreUsuario string
	Email         string
}
