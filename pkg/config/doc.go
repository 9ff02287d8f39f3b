// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: optional
// .env files are read into the process environment, then env struct tags are
// parsed into the target value. Each (type, prefix) pair is parsed once per
// process and served from a cache afterwards.
//
//	type AppConfig struct {
//		API httpclient.Config `envPrefix:"LIMS_"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg, config.WithEnvFiles(".env")); err != nil {
//		return err
//	}
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrNilPointer and ErrConfigNotLoaded.
package config
