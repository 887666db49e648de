package router

import (
	"database/sql"
	"net/http"

	_ "github.com/eugeniosaintemarie/encontratumascota/docs"
	mem "github.com/eugeniosaintemarie/encontratumascota/internal/adapters/storage/memory"
	pg "github.com/eugeniosaintemarie/encontratumascota/internal/adapters/storage/postgres"
	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/publicaciones"
	"github.com/eugeniosaintemarie/encontratumascota/internal/domain/usuarios"
	"github.com/eugeniosaintemarie/encontratumascota/internal/middleware"
	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/logger"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/auth"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/blob"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/captcha"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.SessionVerifier // nil = modo dev (X-Debug-User-ID)

	// DB elegida una sola vez al arrancar: Postgres si viene, si no
	// in-memory. No hay fallback por request.
	DB *sql.DB

	// DemoMode habilita filas de prueba y el viewer demo.
	DemoMode bool

	Blob    blob.Store       // nil = /upload responde 503
	Captcha captcha.Verifier // nil = registro sin CAPTCHA (dev)

	Logger logger.Logger // nil = logger default a stdout
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Error})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.DemoContext(opts.DemoMode))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		pubRepo  publicaciones.Repository
		userRepo usuarios.Repository
	)

	if opts.DB != nil {
		pubRepo = pg.NewPublicacionesRepo(opts.DB)
		userRepo = pg.NewUsuariosRepo(opts.DB)
	} else {
		pubRepo = mem.NewPublicacionesRepo()
		userRepo = mem.NewUsuariosRepo()
	}

	pubSvc := publicaciones.NewService(pubRepo, opts.DemoMode)
	userSvc := usuarios.NewService(userRepo, opts.Captcha)

	publicaciones.RegisterRoutes(r, pubSvc, log)
	usuarios.RegisterRoutes(r, userSvc, log)

	r.Post("/upload", uploadHandler(opts.Blob))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
