package config_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/urlsigner/pkg/config"
)

type fileConfig struct {
	Secret     string        `env:"CFGTEST_SECRET"`
	TTL        time.Duration `env:"CFGTEST_TTL" envDefault:"1h"`
	Algorithms []string      `env:"CFGTEST_ALGORITHMS" envSeparator:","`
	Quoted     string        `env:"CFGTEST_QUOTED"`
	Priority   string        `env:"CFGTEST_PRIORITY"`
}

type overrideConfig struct {
	Priority string `env:"CFGTEST_PRIORITY"`
	Only     string `env:"CFGTEST_ONLY_OVERRIDE"`
}

type defaultsConfig struct {
	Scheme string        `env:"CFGTEST_DEFAULT_SCHEME" envDefault:"timed-hmac"`
	TTL    time.Duration `env:"CFGTEST_DEFAULT_TTL" envDefault:"15m"`
	Debug  bool          `env:"CFGTEST_DEFAULT_DEBUG" envDefault:"true"`
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
}

type cachedConfig struct {
	Value string `env:"CFGTEST_CACHED"`
}

// unsetAfter clears variables a .env file put into the process environment.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
		config.ResetCache()
	})
}

var fileKeys = []string{
	"CFGTEST_SECRET",
	"CFGTEST_TTL",
	"CFGTEST_ALGORITHMS",
	"CFGTEST_QUOTED",
	"CFGTEST_PRIORITY",
	"CFGTEST_ONLY_OVERRIDE",
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "timed-hmac", cfg.Scheme)
	assert.Equal(t, 15*time.Minute, cfg.TTL)
	assert.True(t, cfg.Debug)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Reload(cfg), config.ErrNilPointer)
}

func TestLoad_MissingRequired(t *testing.T) {
	unsetAfter(t, "CFGTEST_REQUIRED_SECRET")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.ErrorContains(t, err, "CFGTEST_REQUIRED_SECRET")

	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("CFGTEST_REQUIRED_SECRET", "now-set")
	require.NoError(t, config.Load(&cfg), "failures are not cached")
	assert.Equal(t, "now-set", cfg.Secret)
}

func TestLoad_CachedUntilReload(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_CACHED", "first")

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Value)

	t.Setenv("CFGTEST_CACHED", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)

	require.NoError(t, config.Reload(&again))
	assert.Equal(t, "second", again.Value)

	config.ResetCache()
	t.Setenv("CFGTEST_CACHED", "third")
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "third", again.Value)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFGTEST_CACHED", "shared")

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cfg cachedConfig
			if err := config.Load(&cfg); err == nil {
				results[i] = cfg.Value
			}
		}()
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestLoadEnv_File(t *testing.T) {
	unsetAfter(t, fileKeys...)

	require.NoError(t, config.LoadEnv("testdata/signer.env"))

	var cfg fileConfig
	require.NoError(t, config.Reload(&cfg))

	assert.Equal(t, "file-secret", cfg.Secret)
	assert.Equal(t, 30*time.Minute, cfg.TTL)
	assert.Equal(t, []string{"md5", "sha1", "sha256"}, cfg.Algorithms)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Equal(t, "signer_file", cfg.Priority)
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	unsetAfter(t, fileKeys...)
	t.Setenv("CFGTEST_SECRET", "from-process")

	require.NoError(t, config.LoadEnv("testdata/signer.env", "testdata/override.env"))

	var cfg fileConfig
	require.NoError(t, config.Reload(&cfg))
	assert.Equal(t, "from-process", cfg.Secret)
	assert.Equal(t, "signer_file", cfg.Priority, "earlier files win")

	var other overrideConfig
	require.NoError(t, config.Reload(&other))
	assert.Equal(t, "present", other.Only)
}

func TestOverloadEnv_LaterFilesWin(t *testing.T) {
	unsetAfter(t, fileKeys...)
	t.Setenv("CFGTEST_PRIORITY", "from-process")

	require.NoError(t, config.OverloadEnv("testdata/signer.env", "testdata/override.env"))

	var cfg overrideConfig
	require.NoError(t, config.Reload(&cfg))
	assert.Equal(t, "override_file", cfg.Priority)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.ErrorIs(t, config.OverloadEnv("testdata/does-not-exist.env"), config.ErrLoadingEnvFile)

	assert.Panics(t, func() { config.MustLoadEnv("testdata/does-not-exist.env") })
}

func TestMustLoadEnv(t *testing.T) {
	unsetAfter(t, fileKeys...)

	assert.NotPanics(t, func() { config.MustLoadEnv("testdata/signer.env") })
	assert.Equal(t, "file-secret", os.Getenv("CFGTEST_SECRET"))
}
