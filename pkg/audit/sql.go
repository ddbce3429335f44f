package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const auditTable = "audit_log"

const createAuditTable = `CREATE TABLE IF NOT EXISTS audit_log (
	id VARCHAR(36) PRIMARY KEY,
	endpoint VARCHAR(64) NOT NULL,
	query TEXT NOT NULL,
	geo VARCHAR(8) NOT NULL,
	username VARCHAR(255) NOT NULL,
	created_at BIGINT NOT NULL
)`

// SQLAudit stores audit records in a MySQL or PostgreSQL table.
type SQLAudit struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	newID   func() string
}

var (
	_ Audit  = (*SQLAudit)(nil)
	_ Reader = (*SQLAudit)(nil)
)

type Record struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	Query     string    `json:"query"`
	Geo       string    `json:"geo"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSQLAudit(db *sql.DB, postgres bool) *SQLAudit {
	var placeholder sq.PlaceholderFormat = sq.Question
	if postgres {
		placeholder = sq.Dollar
	}
	return &SQLAudit{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		newID:   uuid.NewString,
	}
}

func (d *SQLAudit) EnsureSchema(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, createAuditTable); err != nil {
		return fmt.Errorf("unable to create audit table: %w", err)
	}
	return nil
}

func (d *SQLAudit) Write(ctx context.Context, r *RequestData) error {
	query, args, err := d.builder.
		Insert(auditTable).
		Columns("id", "endpoint", "query", "geo", "username", "created_at").
		Values(d.newID(), r.Endpoint, r.Query, r.Geo, r.User, r.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("unable to build audit statement: %w", err)
	}

	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unable to write audit record: %w", err)
	}
	return nil
}

// Recent returns the newest audit records, newest first.
func (d *SQLAudit) Recent(ctx context.Context, limit uint64) ([]Record, error) {
	query, args, err := d.builder.
		Select("id", "endpoint", "query", "geo", "username", "created_at").
		From(auditTable).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unable to build audit query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to read audit records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Endpoint, &rec.Query, &rec.Geo, &rec.User, &created); err != nil {
			return nil, fmt.Errorf("unable to scan audit record: %w", err)
		}
		rec.Timestamp = time.Unix(created, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read audit records: %w", err)
	}

	return records, nil
}
