package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecer struct {
	statements []string
	err        error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag{}, r.err
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestRunMigrations_AppliesSQLFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0002_b.sql", "B")
	writeFile(t, dir, "0001_a.sql", "A")
	writeFile(t, dir, "README.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	db := &recordingExecer{}
	require.NoError(t, RunMigrations(context.Background(), db, dir, zap.NewNop()))

	assert.Equal(t, []string{"A", "B"}, db.statements)
}

func TestRunMigrations_StopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "0001_a.sql", "A")
	writeFile(t, dir, "0002_b.sql", "B")

	db := &recordingExecer{err: errors.New("syntax error")}
	err := RunMigrations(context.Background(), db, dir, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_a.sql")
	assert.Len(t, db.statements, 1)
}

func TestRunMigrations_MissingDir(t *testing.T) {
	err := RunMigrations(context.Background(), &recordingExecer{}, filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	assert.Error(t, err)
}

func TestRunMigrations_RepositorySchema(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, RunMigrations(context.Background(), db, filepath.Join("..", "..", "migrations"), zap.NewNop()))

	require.Len(t, db.statements, 2)
	assert.Contains(t, db.statements[0], "users_email_key")
	assert.Contains(t, db.statements[1], "passengers_email_key")
}

func TestPostgres_NilPool(t *testing.T) {
	var pg *Postgres
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}
