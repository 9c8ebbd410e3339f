// Package config loads typed configuration from environment variables,
// optionally seeded from dotenv files.
//
// Structs declare their variables with caarlos0/env tags; nested structs
// (pg.Config, httpserver.Config, agency.Config) compose into one
// application config:
//
//	type Config struct {
//		Env      string `env:"APP_ENV" envDefault:"development"`
//		PG       pg.Config
//		Fallback agency.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithEnvFiles(".env", ".env.local")); err != nil {
//		log.Fatal(err)
//	}
//
// Variables set in the process environment take precedence over dotenv
// files. Missing required variables fail with ErrParsingConfig.
package config
