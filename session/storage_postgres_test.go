package session_test

import (
	"context"
	"strings"
	"testing"

	"github.com/hanksha/fitclass-booking/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeDB keeps session_storage rows in a map and answers the three
// statements PostgresStorage issues.
type fakeDB struct {
	rows  map[string][]byte
	execs []string
	err   error
}

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	return nil
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if db.err != nil {
		return pgconn.CommandTag{}, db.err
	}

	db.execs = append(db.execs, strings.Fields(sql)[0])

	if strings.Contains(sql, "INSERT INTO session_storage") {
		db.rows[args[0].(string)] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}

	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if db.err != nil {
		return fakeRow{err: db.err}
	}

	data, ok := db.rows[args[0].(string)]

	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}

	return fakeRow{data: data}
}

func TestPostgresStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		db := &fakeDB{rows: map[string][]byte{}}
		storage := session.NewPostgresStorage(db)

		require.NoError(t, storage.Setup(ctx))

		_, err := storage.Load(ctx, "auth-storage")
		require.ErrorIs(t, err, session.ErrEntryNotFound)

		require.NoError(t, storage.Save(ctx, "auth-storage", []byte(`{"version":0}`)))

		data, err := storage.Load(ctx, "auth-storage")
		require.NoError(t, err)
		require.JSONEq(t, `{"version":0}`, string(data))
		require.Equal(t, []string{"CREATE", "INSERT"}, db.execs)
	})

	t.Run("database error", func(t *testing.T) {
		db := &fakeDB{rows: map[string][]byte{}, err: pgx.ErrTxClosed}
		storage := session.NewPostgresStorage(db)

		require.Error(t, storage.Setup(ctx))
		require.ErrorIs(t, storage.Save(ctx, "auth-storage", []byte(`{}`)), pgx.ErrTxClosed)

		_, err := storage.Load(ctx, "auth-storage")
		require.ErrorIs(t, err, pgx.ErrTxClosed)
		require.NotErrorIs(t, err, session.ErrEntryNotFound)
	})
}

func TestPostgresStorageFailedSaveIsNotPublished(t *testing.T) {
	storage := session.NewPostgresStorage(&fakeDB{rows: map[string][]byte{}, err: pgx.ErrTxClosed})

	called := false
	storage.Subscribe("auth-storage", func([]byte) { called = true })

	require.Error(t, storage.Save(context.Background(), "auth-storage", []byte(`{}`)))
	require.False(t, called)
}
