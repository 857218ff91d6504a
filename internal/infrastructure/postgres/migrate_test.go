package postgres

import (
	"bytes"
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
)

func TestMigrationsEmbebidas_TienenUpYDown(t *testing.T) {
	src, err := newSource(migrations.FS)
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := src.ReadUp(first)
	require.NoError(t, err)
	body, err := io.ReadAll(up)
	require.NoError(t, up.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS inventory_logs")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	body, err = io.ReadAll(down)
	require.NoError(t, down.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), "DROP TABLE IF EXISTS inventory_logs")
}

func TestNewSource_NombreInvalido(t *testing.T) {
	fsys := fstest.MapFS{"init.sql": &fstest.MapFile{Data: []byte("SELECT 1;")}}
	src, err := newSource(fsys)
	if err == nil {
		// iofs ignora archivos que no siguen NNN_nombre.(up|down).sql
		defer src.Close()
		_, err = src.First()
	}
	assert.Error(t, err)
}

func TestMigrateLogger_EscribeConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := migrateLogger{log: logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})}
	l.Printf("1/u init (%s)\n", "12ms")

	assert.Contains(t, buf.String(), `"component":"migrate"`)
	assert.Contains(t, buf.String(), "1/u init (12ms)")
	assert.False(t, l.Verbose())
}
