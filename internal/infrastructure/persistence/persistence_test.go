package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/persistence"
	"github.com/jhoicas/almoxarifado-api/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	repos, err := persistence.Open(context.Background(), config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "p.db"),
	}, nil)
	require.NoError(t, err)
	defer repos.Close()

	assert.Equal(t, config.DriverSQLite, repos.Driver)
	n, err := repos.Users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NotNil(t, repos.TxRunner)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := persistence.Open(context.Background(), config.DBConfig{Driver: "mysql"}, nil)
	assert.Error(t, err)
}
