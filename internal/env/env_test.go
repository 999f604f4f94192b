package env

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	Host    string        `env:"TEST_HOST" default:"localhost"`
	Port    int           `env:"TEST_PORT" default:"8080"`
	Enabled bool          `env:"TEST_ENABLED" default:"true"`
	Timeout time.Duration `env:"TEST_TIMEOUT" default:"5s"`
	Limit   int64         `env:"TEST_LIMIT"`
	NoDef   string        `env:"TEST_NO_DEF"`
}

type rootConfig struct {
	Server serverConfig
	Name   string `env:"TEST_NAME" default:"daily"`
}

var errPortRequired = errors.New("port must be positive")

func (c *serverConfig) Validate() error {
	if c.Port <= 0 {
		return errPortRequired
	}
	return nil
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_HOST", "example.com")
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_ENABLED", "false")
	t.Setenv("TEST_TIMEOUT", "1m30s")
	t.Setenv("TEST_LIMIT", "1048576")
	t.Setenv("TEST_NO_DEF", "foo")

	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1048576), cfg.Limit)
	assert.Equal(t, "foo", cfg.NoDef)
}

func TestLoad_Defaults(t *testing.T) {
	var cfg rootConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Zero(t, cfg.Server.Limit)
	assert.Empty(t, cfg.Server.NoDef)
	assert.Equal(t, "daily", cfg.Name)
}

func TestLoad_EmptyStringRespected(t *testing.T) {
	t.Setenv("TEST_HOST", "")
	t.Setenv("TEST_PORT", "")

	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "", cfg.Host, "empty string is a value for string fields")
	assert.Equal(t, 8080, cfg.Port, "empty non-string falls back to default")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_PORT", "eighty")

	var cfg serverConfig
	err := Load(&cfg)

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "TEST_PORT", invalid.EnvVar)
	assert.Equal(t, "Port", invalid.Field)
	assert.Equal(t, "eighty", invalid.Value)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "soon")

	var cfg serverConfig
	err := Load(&cfg)

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Timeout", invalid.Field)
}

func TestLoad_NestedValidation(t *testing.T) {
	t.Setenv("TEST_PORT", "-1")

	var cfg rootConfig
	err := Load(&cfg)

	assert.ErrorIs(t, err, errPortRequired)
}

func TestLoad_NotStructPointer(t *testing.T) {
	var cfg serverConfig
	err := Load(cfg)

	var notPtr ErrNotStructPointer
	require.ErrorAs(t, err, &notPtr)
	assert.Contains(t, err.Error(), "env.serverConfig")
}

func TestLoad_UnsupportedType(t *testing.T) {
	t.Setenv("TEST_RATIO", "0.5")
	cfg := struct {
		Ratio float64 `env:"TEST_RATIO"`
	}{}

	err := Load(&cfg)

	var unsupported ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "float64", unsupported.Kind)
}
