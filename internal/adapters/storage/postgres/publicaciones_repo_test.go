package postgres

import "testing"

// El filtro de ubicación es substring literal: los comodines de LIKE del
// input se escapan para que ambos backends coincidan.
func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Caballito", "Caballito"},
		{"100%", `100\%`},
		{"San_Telmo", `San\_Telmo`},
		{`c:\ruta`, `c:\\ruta`},
		{"%_", `\%\_`},
	}

	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
