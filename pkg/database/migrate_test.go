package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory_CreatesTables(t *testing.T) {
	db, err := OpenInMemory("migrate_creates_tables")
	require.NoError(t, err)

	for _, table := range []string{"setores", "usuarios", "modalidades", "fases_template", "processos", "processo_movimentacoes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestAutoMigrateAll_Idempotent(t *testing.T) {
	db, err := OpenInMemory("migrate_idempotent")
	require.NoError(t, err)

	require.NoError(t, db.Exec("INSERT INTO setores (id, nome, created_at) VALUES ('s1', 'CECOMP', CURRENT_TIMESTAMP)").Error)
	require.NoError(t, AutoMigrateAll(db))

	var count int64
	require.NoError(t, db.Table("setores").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAutoMigrateAll_NilDB(t *testing.T) {
	assert.Error(t, AutoMigrateAll(nil))
}

func TestParseGormLevel(t *testing.T) {
	assert.NotEqual(t, parseGormLevel("silent"), parseGormLevel("info"))
	assert.Equal(t, parseGormLevel("warn"), parseGormLevel(""))
}
