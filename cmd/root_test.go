package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	devConfig "github.com/Daskott/raksha/dev/config"
	"github.com/Daskott/raksha/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	path, _ := os.Getwd()
	return filepath.Join(path, "test-fixtures", name)
}

func TestServerConfigDefaults(t *testing.T) {
	v := newConfig()
	v.SetConfigFile(fixture("server.yaml"))
	require.Nil(t, v.ReadInConfig())

	cfg, err := serverConfig(v)
	require.Nil(t, err)

	assert.Equal(t, 3000, cfg.Raksha.Listener.Port)
	assert.Equal(t, "20-M", cfg.Raksha.AuthRateLimit)
	assert.Equal(t, "UTC", cfg.Raksha.Cron.TimeZone)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "fixture-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 30, cfg.Auth.AccessTokenExpireMinutes)
	assert.False(t, cfg.Google.Storage.EnableSqliteBackupAndSync)
}

func TestServerConfigEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "90")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")
	t.Setenv("DATABASE_URL", "postgres://raksha@localhost/raksha")

	v := newConfig()
	v.SetConfigFile(fixture("server.yaml"))
	require.Nil(t, v.ReadInConfig())

	cfg, err := serverConfig(v)
	require.Nil(t, err)

	assert.Equal(t, "from-env", cfg.Auth.SecretKey)
	assert.Equal(t, 90, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, "+15550001111", cfg.Twilio.PhoneNumber)
	assert.Equal(t, "postgres://raksha@localhost/raksha", cfg.Database.DSN)
}

func TestServerConfigValidation(t *testing.T) {
	v := newConfig()
	require.Nil(t, v.ReadConfig(strings.NewReader("database:\n  driver: mongo\n")))

	_, err := serverConfig(v)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestDevConfigIsValid(t *testing.T) {
	v := newConfig()
	require.Nil(t, v.ReadConfig(strings.NewReader(devConfig.SERVER_YML)))

	cfg, err := serverConfig(v)
	require.Nil(t, err)
	assert.Equal(t, "sqlcipher", cfg.Database.Driver)
	assert.Equal(t, 3000, cfg.Raksha.Listener.Port)
}

func TestReadZones(t *testing.T) {
	zones, err := readZones(fixture("zones.yaml"))
	require.Nil(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "Central Market", zones[0].Name)
	assert.Equal(t, models.CAUTION_ZONE, zones[0].ZoneType)
	assert.Equal(t, 5, zones[0].RiskLevel)
	assert.Equal(t, "Crowded after dark", *zones[0].Description)

	assert.Equal(t, models.DANGER_ZONE, zones[1].ZoneType)
	assert.Equal(t, [][]float64{{12.9716, 77.5946}, {12.9721, 77.5952}}, zones[1].Coordinates)

	_, err = readZones(fixture("bad-zones.yaml"))
	assert.NotNil(t, err)

	_, err = readZones(fixture("missing.yaml"))
	assert.NotNil(t, err)
}
