package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "casevault", cfg.DBName)
	assert.Equal(t, DefaultCatalogPath, cfg.CatalogPath)
	assert.InDelta(t, 0.90, cfg.HouseFactor, 1e-9)
	assert.Equal(t, DefaultGrantRetries, cfg.GrantRetries)
	assert.Equal(t, DefaultReferralBonus, cfg.ReferralBonus)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_HouseFactorBounds(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	t.Setenv("HOUSE_FACTOR", "1.5")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("HOUSE_FACTOR", "0")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("HOUSE_FACTOR", "1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cfg.HouseFactor, 1e-9)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "user",
		DBPassword: "pass",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "vault",
	}

	assert.Equal(t, "postgres://user:pass@db:5433/vault?sslmode=disable", cfg.GetDBConnString())
}
