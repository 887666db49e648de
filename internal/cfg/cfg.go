package cfg

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version se setea en build time via -ldflags.
var Version = "dev"

type rawCfg struct {
	// Servidor
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Base de datos. Si DSN queda vacío, se usan repos in-memory (dev).
	DBDSN string `long:"db-dsn" env:"DB_DSN" description:"Postgres DSN; empty = in-memory storage"`

	// Auth (Neon Auth). Si BaseURL queda vacío, el middleware corre en modo dev
	// y acepta X-Debug-User-ID.
	AuthBaseURL string `long:"auth-base-url" env:"NEON_AUTH_BASE_URL" description:"Neon Auth base URL; empty = dev mode"`
	AuthAPIKey  string `long:"auth-api-key" env:"NEON_AUTH_API_KEY" description:"Neon Auth API key"`

	// Blob storage (imágenes)
	BlobBaseURL string `long:"blob-base-url" env:"BLOB_BASE_URL" description:"Blob store base URL"`
	BlobToken   string `long:"blob-token" env:"BLOB_READ_WRITE_TOKEN" description:"Blob store token"`

	// reCAPTCHA (registro). Sin secret => se permite registrar (dev).
	RecaptchaSecret string `long:"recaptcha-secret" env:"RECAPTCHA_SECRET_KEY" description:"reCAPTCHA secret key"`

	// Modo demo: habilita datos de prueba y el header X-Demo-Mode.
	DemoMode bool `long:"demo-mode" env:"SHOW_TEST_DATA" description:"Enable demo mode (test rows + demo viewer)"`

	// Logging
	LogLevel  string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"debug|info|warn|error"`
	LogFormat string `long:"log-format" env:"LOG_FORMAT" default:"text" description:"text|json"`
}

type Cfg struct {
	Port string

	DBDSN string

	AuthBaseURL string
	AuthAPIKey  string

	BlobBaseURL string
	BlobToken   string

	RecaptchaSecret string

	DemoMode bool

	LogLevel  string
	LogFormat string
	Version   string
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &Cfg{
		Port:            raw.Port,
		DBDSN:           raw.DBDSN,
		AuthBaseURL:     raw.AuthBaseURL,
		AuthAPIKey:      raw.AuthAPIKey,
		BlobBaseURL:     raw.BlobBaseURL,
		BlobToken:       raw.BlobToken,
		RecaptchaSecret: raw.RecaptchaSecret,
		DemoMode:        raw.DemoMode,
		LogLevel:        raw.LogLevel,
		LogFormat:       raw.LogFormat,
		Version:         Version,
	}, nil
}
