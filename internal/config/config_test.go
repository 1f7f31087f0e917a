package config_test

import (
	"testing"
	"time"

	testify "github.com/stretchr/testify/assert"

	"github.com/flowcore/engine/internal/config"
	"github.com/flowcore/engine/pkg/api"
)

func TestDefaults(t *testing.T) {
	c := config.NewDefaultConfig()

	testify.NoError(t, c.Validate())
	testify.Equal(t, config.DefaultAPIPort, c.APIPort)
	testify.Equal(t, api.DefaultMaxSteps, c.MaxSteps)
	testify.Equal(t, api.DefaultTimeout, c.RunTimeout)
	testify.Equal(t, "info", c.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MAX_STEPS", "25")
	t.Setenv("RUN_TIMEOUT", "45s")

	c := config.NewDefaultConfig()
	testify.NoError(t, c.LoadFromEnv())

	testify.Equal(t, 9090, c.APIPort)
	testify.Equal(t, "debug", c.LogLevel)
	testify.Equal(t, "redis:6379", c.RedisAddr)
	testify.Equal(t, 25, c.MaxSteps)
	testify.Equal(t, 45*time.Second, c.RunTimeout)
}

func TestLoadFromEnvBadValues(t *testing.T) {
	t.Setenv("API_PORT", "not-a-port")
	c := config.NewDefaultConfig()
	testify.Error(t, c.LoadFromEnv())

	t.Setenv("API_PORT", "70000")
	c = config.NewDefaultConfig()
	testify.Error(t, c.LoadFromEnv())

	t.Setenv("API_PORT", "8080")
	t.Setenv("RUN_TIMEOUT", "yesterday")
	c = config.NewDefaultConfig()
	testify.Error(t, c.LoadFromEnv())
}

func TestValidate(t *testing.T) {
	c := config.NewDefaultConfig()
	c.APIPort = 0
	testify.ErrorIs(t, c.Validate(), config.ErrInvalidAPIPort)

	c = config.NewDefaultConfig()
	c.MaxSteps = 0
	testify.ErrorIs(t, c.Validate(), config.ErrInvalidMaxSteps)

	c = config.NewDefaultConfig()
	c.RunTimeout = -time.Second
	testify.ErrorIs(t, c.Validate(), config.ErrInvalidRunTimeout)
}

func TestOptions(t *testing.T) {
	c := config.NewDefaultConfig()
	c.MaxSteps = 7
	c.RunTimeout = time.Minute

	opts := c.Options()
	testify.Equal(t, 7, opts.MaxSteps)
	testify.Equal(t, time.Minute, opts.Timeout)
}
