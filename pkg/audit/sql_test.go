package audit

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLAuditWrite(t *testing.T) {
	cases := []struct {
		description string
		postgres    bool
		statement   string
		given       func(sqlmock.Sqlmock, string)
		error       bool
		message     string
	}{
		{
			"PostgreSQL placeholders",
			true,
			`INSERT INTO audit_log (id,endpoint,query,geo,username,created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
			func(mock sqlmock.Sqlmock, statement string) {
				mock.ExpectExec(regexp.QuoteMeta(statement)).
					WithArgs("id-1", "search", "golang", "US", "test", int64(1672531200)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			false,
			``,
		},
		{
			"MySQL placeholders",
			false,
			`INSERT INTO audit_log (id,endpoint,query,geo,username,created_at) VALUES (?,?,?,?,?,?)`,
			func(mock sqlmock.Sqlmock, statement string) {
				mock.ExpectExec(regexp.QuoteMeta(statement)).
					WithArgs("id-1", "search", "golang", "US", "test", int64(1672531200)).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			false,
			``,
		},
		{
			"database error",
			true,
			`INSERT INTO audit_log`,
			func(mock sqlmock.Sqlmock, statement string) {
				mock.ExpectExec(regexp.QuoteMeta(statement)).
					WillReturnError(errors.New("connection lost"))
			},
			true,
			`unable to write audit record: connection lost`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tc.given(mock, tc.statement)

			audit := NewSQLAudit(db, tc.postgres)
			audit.newID = func() string { return "id-1" }

			err = audit.Write(context.TODO(), &RequestData{
				Endpoint:  "search",
				Query:     "golang",
				Geo:       "US",
				User:      "test",
				Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
			})

			if tc.error {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.message)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLAuditEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS audit_log")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS audit_log")).
		WillReturnError(errors.New("permission denied"))

	audit := NewSQLAudit(db, true)

	assert.NoError(t, audit.EnsureSchema(context.TODO()))

	err = audit.EnsureSchema(context.TODO())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create audit table")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "endpoint", "query", "geo", "username", "created_at"}).
		AddRow("id-2", "compare", "go, rust", "", "test", int64(1672531260)).
		AddRow("id-1", "search", "golang", "US", "", int64(1672531200))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, endpoint, query, geo, username, created_at FROM audit_log ORDER BY created_at DESC LIMIT 2`)).
		WillReturnRows(rows)

	actual, err := NewSQLAudit(db, true).Recent(context.TODO(), 2)
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{ID: "id-2", Endpoint: "compare", Query: "go, rust", User: "test", Timestamp: time.Date(2023, 1, 1, 0, 1, 0, 0, time.UTC)},
		{ID: "id-1", Endpoint: "search", Query: "golang", Geo: "US", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, actual)
	assert.NoError(t, mock.ExpectationsWereMet())
}
