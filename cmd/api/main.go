package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/eugeniosaintemarie/encontratumascota/internal/adapters/auth/neonauth"
	"github.com/eugeniosaintemarie/encontratumascota/internal/adapters/blob/vercelblob"
	"github.com/eugeniosaintemarie/encontratumascota/internal/adapters/captcha/recaptcha"
	pg "github.com/eugeniosaintemarie/encontratumascota/internal/adapters/storage/postgres"
	"github.com/eugeniosaintemarie/encontratumascota/internal/cfg"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/auth"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/blob"
	"github.com/eugeniosaintemarie/encontratumascota/internal/ports/captcha"
	"github.com/eugeniosaintemarie/encontratumascota/internal/platform/logger"
	"github.com/eugeniosaintemarie/encontratumascota/internal/router"
)

// @title Encontra Tu Mascota API
// @version 1.0
// @description API de avisos de mascotas encontradas
// @BasePath /
func main() {
	conf, err := cfg.Load()
	if err != nil {
		os.Exit(1)
	}
	if conf == nil { // --help
		return
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(conf.LogLevel),
		Format: logger.ParseFormat(conf.LogFormat),
		App:    "encontratumascota",
	})

	// Backend de storage: se decide una sola vez acá. DSN inválida es un
	// error de arranque, no un branch por request.
	var db *sql.DB
	if conf.DBDSN != "" {
		db, err = pg.Open(conf.DBDSN)
		if err != nil {
			log.Error("failed to open database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		version, dirty, err := pg.RunMigrations(db)
		if err != nil {
			log.Error("failed to run migrations", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("migrations applied", map[string]any{"version": version, "dirty": dirty})
	} else {
		log.Warn("DB_DSN empty, using in-memory storage", nil)
	}

	var verifier auth.SessionVerifier
	if conf.AuthBaseURL != "" {
		client, err := neonauth.NewClient(neonauth.Config{
			BaseURL: conf.AuthBaseURL,
			APIKey:  conf.AuthAPIKey,
		})
		if err != nil {
			log.Error("failed to build auth client", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = neonauth.NewVerifier(client)
	} else {
		log.Warn("auth verifier not configured, dev mode (X-Debug-User-ID)", nil)
	}

	var blobStore blob.Store
	if conf.BlobBaseURL != "" {
		blobStore, err = vercelblob.NewClient(vercelblob.Config{
			BaseURL: conf.BlobBaseURL,
			Token:   conf.BlobToken,
		})
		if err != nil {
			log.Error("failed to build blob client", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	var captchaVerifier captcha.Verifier
	if conf.RecaptchaSecret != "" {
		captchaVerifier = recaptcha.NewClient(recaptcha.Config{SecretKey: conf.RecaptchaSecret})
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		DemoMode:     conf.DemoMode,
		Blob:         blobStore,
		Captcha:      captchaVerifier,
		Logger:       log,
	})

	addr := ":" + conf.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "version": conf.Version, "demo": conf.DemoMode})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
