package csv

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestPrintRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow("1", "ada", nil).
		AddRow("2", "grace", "grace@example.com")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	res, err := db.Query("SELECT id, name, email FROM users")
	require.NoError(t, err)
	defer res.Close()

	d := mustDialect(NewDialect(WithNullString("NULL"), WithRecordSeparator("\n")))
	var sb strings.Builder
	p, err := NewPrinter(&sb, d)
	require.NoError(t, err)

	require.NoError(t, p.PrintRows(res, true))
	require.NoError(t, p.Flush())

	want := "id,name,email\n1,ada,NULL\n2,grace,grace@example.com\n"
	require.Equal(t, want, sb.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintRows_NoHeader(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"a", "b"}).AddRow("1", "2"))

	res, err := db.Query("SELECT a, b FROM t")
	require.NoError(t, err)
	defer res.Close()

	var sb strings.Builder
	p, err := NewPrinter(&sb, mustDialect(NewDialect(WithRecordSeparator("\n"))))
	require.NoError(t, err)

	require.NoError(t, p.PrintRows(res, false))
	require.NoError(t, p.Flush())
	require.Equal(t, "1,2\n", sb.String())
}
