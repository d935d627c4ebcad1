// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing. Every component of the
// url signer declares its own tagged Config struct (urlsigner.Config,
// logger.Config, httpserver.Config) and the command line loads them here:
//
//	if err := config.LoadEnv("deploy/signer.env"); err != nil {
//		return err
//	}
//	var cfg urlsigner.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parsed values are cached per type, so repeated Load calls for the same
// struct are cheap and return the same values. Reload and ResetCache clear
// the cache after the environment changes, which is mostly useful in tests.
//
// Failures unwrap to ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer.
package config
