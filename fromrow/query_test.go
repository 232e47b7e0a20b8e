package fromrow_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromrow-generator/fromrow"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}

func TestQueryMany(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT sensor, value, unit FROM readings WHERE value > ?").
		WithArgs(1.0).
		WillReturnRows(sqlmock.NewRows([]string{"sensor", "value", "unit"}).
			AddRow("a", 2.5, nil).
			AddRow("b", 3.0, "K"))

	q := fromrow.NewQuery("SELECT sensor, value, unit FROM readings WHERE value > ?")
	q.Bind(1.0)

	got, err := fromrow.QueryMany[reading](context.Background(), db, q)
	require.NoError(t, err)

	k := "K"
	assert.Equal(t, []reading{{Sensor: "a", Value: 2.5}, {Sensor: "b", Value: 3, Unit: &k}}, got)
}

func TestQueryMany_MultipleResultSets(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("EXEC batch").
		WillReturnRows(
			sqlmock.NewRows([]string{"n"}).AddRow(int64(1)).AddRow(int64(2)),
			sqlmock.NewRows([]string{"m"}),
			sqlmock.NewRows([]string{"k"}).AddRow(int64(3)),
		)

	got, err := fromrow.QueryManyFunc(context.Background(), db, fromrow.NewQuery("EXEC batch"), fromrow.Int64)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestQueryMany_Empty(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT n FROM t").WillReturnRows(sqlmock.NewRows([]string{"n"}))

	got, err := fromrow.QueryManyFunc(context.Background(), db, fromrow.NewQuery("SELECT n FROM t"), fromrow.Int32)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQueryMany_AllOrNothing(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT sensor, value FROM readings").
		WillReturnRows(sqlmock.NewRows([]string{"sensor", "value"}).
			AddRow("a", 1.0).
			AddRow(nil, 2.0).
			AddRow("c", 3.0))

	got, err := fromrow.QueryMany[reading](context.Background(), db, fromrow.NewQuery("SELECT sensor, value FROM readings"))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, fromrow.ErrCellAbsent)
}

func TestQueryMany_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("query", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery("SELECT 1").WillReturnError(boom)

		_, err := fromrow.QueryManyFunc(context.Background(), db, fromrow.NewQuery("SELECT 1"), fromrow.Int)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("row", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		mock.ExpectQuery("SELECT 1").
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(1)).AddRow(int64(2)).RowError(1, boom))

		got, err := fromrow.QueryManyFunc(context.Background(), db, fromrow.NewQuery("SELECT 1"), fromrow.Int)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()

		db, mock := newMock(t)
		// rows left unread, so the cursor is closed by the helper
		mock.ExpectQuery("SELECT 1").
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(int64(1)).AddRow(int64(2)).CloseError(boom))

		got, found, err := fromrow.QueryFirstOrNoneFunc(context.Background(), db, fromrow.NewQuery("SELECT 1"), fromrow.Int)
		assert.ErrorIs(t, err, boom)
		assert.False(t, found)
		assert.Zero(t, got)
	})
}

func TestQueryFirstOrNone(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT sensor, value FROM readings").
		WillReturnRows(
			sqlmock.NewRows([]string{"sensor", "value"}).AddRow("a", 1.0).AddRow(nil, nil),
			sqlmock.NewRows([]string{"other"}).AddRow("ignored"),
		)

	got, found, err := fromrow.QueryFirstOrNone[reading](context.Background(), db, fromrow.NewQuery("SELECT sensor, value FROM readings"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, reading{Sensor: "a", Value: 1}, got)
}

func TestQueryFirstOrNone_Empty(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT n FROM t").WillReturnRows(sqlmock.NewRows([]string{"n"}))

	got, found, err := fromrow.QueryFirstOrNoneFunc(context.Background(), db, fromrow.NewQuery("SELECT n FROM t"), fromrow.Int64)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, got)
}

func TestQueryFirstOrNone_MapError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT n FROM t").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow("x"))

	_, found, err := fromrow.QueryFirstOrNoneFunc(context.Background(), db, fromrow.NewQuery("SELECT n FROM t"), fromrow.Int64)
	assert.ErrorIs(t, err, fromrow.ErrNarrow)
	assert.False(t, found)
}

func TestExecute(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectExec("UPDATE readings SET value = value + ?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))

	q := fromrow.NewQuery("UPDATE readings SET value = value + ?", 1)

	ack, err := fromrow.Execute(context.Background(), db, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), ack.RowsAffected)
	assert.True(t, ack.HasLastInsertID)
}

func TestExecute_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM readings").WillReturnError(boom)
	mock.ExpectExec("DELETE FROM readings").WillReturnResult(sqlmock.NewErrorResult(boom))

	_, err := fromrow.Execute(context.Background(), db, fromrow.NewQuery("DELETE FROM readings"))
	assert.ErrorIs(t, err, boom)

	_, err = fromrow.Execute(context.Background(), db, fromrow.NewQuery("DELETE FROM readings"))
	assert.ErrorIs(t, err, boom)
}

func TestRowSource_RowBeforeNext(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	mock.ExpectQuery("SELECT sensor FROM readings").
		WillReturnRows(sqlmock.NewRows([]string{"sensor"}).AddRow("a"))

	rows, err := db.QueryContext(context.Background(), "SELECT sensor FROM readings")
	require.NoError(t, err)

	defer rows.Close()

	src := fromrow.NewRowSource(rows)

	_, err = src.Row()
	require.ErrorContains(t, err, "call Next first")

	require.True(t, src.Next())

	row, err := src.Row()
	require.NoError(t, err)

	v, ok := row.ByName("sensor")
	require.True(t, ok)
	assert.Equal(t, "a", v.String())

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}
