package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS dataset_snapshots`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	payload := []byte(`{"success": true, "results": []}`)

	mock.ExpectQuery(`SELECT data FROM dataset_snapshots WHERE key = \$1`).
		WithArgs("analyze").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(payload))

	got, err := s.GetSnapshot(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSnapshot_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT data FROM dataset_snapshots WHERE key = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetSnapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PutSnapshot(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	payload := []byte(`[]`)

	mock.ExpectExec(`INSERT INTO dataset_snapshots`).
		WithArgs("analyze", payload).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.PutSnapshot(context.Background(), "analyze", payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListKeys(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT key FROM dataset_snapshots ORDER BY key`).
		WillReturnRows(pgxmock.NewRows([]string{"key"}).
			AddRow("analyze").
			AddRow("risk-analysis"))

	keys, err := s.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze", "risk-analysis"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}
