package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func TestDecode_Defaults(t *testing.T) {
	cfg, err := decode(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTP.Port)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "admin.audit.v1", cfg.Kafka.AuditTopic)
	assert.Equal(t, 2, cfg.Platform.RetryCount)
}

func TestDecode_EnvOverride(t *testing.T) {
	t.Setenv("RESTO_ADMIN_HTTP_PORT", "9090")
	t.Setenv("RESTO_ADMIN_PLATFORM_BASE_URL", "https://api.example.test")
	t.Setenv("RESTO_ADMIN_SESSION_TTL", "2h")

	cfg, err := decode(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "https://api.example.test", cfg.Platform.BaseURL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
}

func TestValidate_ShortSecret(t *testing.T) {
	t.Setenv("RESTO_ADMIN_SESSION_SECRET", "too-short")

	_, err := decode(newTestViper())
	assert.Error(t, err)
}
