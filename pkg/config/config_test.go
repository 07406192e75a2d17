package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "almoxarifado.db", cfg.DB.SQLitePath)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60, cfg.JWT.Expiration)
}

func TestFromViper_ValoresExplicitos(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "SQLite")
	v.Set("DB_PORT", "6543")
	v.Set("HTTP_PORT", 9090)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, 6543, cfg.DB.Port, "los enteros pueden venir como string desde env")
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mysql")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "almox", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/almox?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}

func TestFromViper_PoolYSeed(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.DB.PreferIPv4)
	assert.Equal(t, "admin", cfg.Seed.AdminUsername)
	assert.Equal(t, "admin12345", cfg.Seed.AdminPassword)

	v := viper.New()
	v.Set("DB_MAX_CONNS", 4)
	v.Set("DB_MIN_CONNS", 9)
	v.Set("DB_CONN_MAX_LIFETIME_MINUTES", "15")
	v.Set("DB_PREFER_IPV4", "true")
	v.Set("SEED_ADMIN_PASSWORD", "otra-clave")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.DB.MinConns, "MinConns mayor que MaxConns vuelve al default")
	assert.Equal(t, 15*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.True(t, cfg.DB.PreferIPv4)
	assert.Equal(t, "otra-clave", cfg.Seed.AdminPassword)
}
