package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the typed queries used by the application.
type Queries struct {
	db DBTX
}

// New creates a Queries bound to the given connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getValue = `SELECT value FROM kv WHERE key = ?`

// GetValue returns the value stored under key. The bool reports whether the
// key exists.
func (q *Queries) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := q.db.QueryRowContext(ctx, getValue, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

const setValue = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

// SetValue stores value under key, replacing any previous value.
func (q *Queries) SetValue(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, setValue, key, value)
	return err
}

// FetchLog is one recorded cache load outcome.
type FetchLog struct {
	ID        int64
	Status    string
	Detail    sql.NullString
	CreatedAt time.Time
}

// CreateFetchLogParams holds the fields for a new fetch log row.
type CreateFetchLogParams struct {
	Status string
	Detail sql.NullString
}

const createFetchLog = `INSERT INTO fetch_log (status, detail) VALUES (?, ?)`

// CreateFetchLog records a cache load outcome.
func (q *Queries) CreateFetchLog(ctx context.Context, arg CreateFetchLogParams) error {
	_, err := q.db.ExecContext(ctx, createFetchLog, arg.Status, arg.Detail)
	return err
}

const getLatestFetchLog = `
SELECT id, status, detail, created_at FROM fetch_log
ORDER BY id DESC
LIMIT 1
`

// GetLatestFetchLog returns the most recent load outcome, or sql.ErrNoRows.
func (q *Queries) GetLatestFetchLog(ctx context.Context) (*FetchLog, error) {
	var l FetchLog
	err := q.db.QueryRowContext(ctx, getLatestFetchLog).Scan(&l.ID, &l.Status, &l.Detail, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const countFetchLogsByStatus = `
SELECT status, COUNT(*) AS count FROM fetch_log
GROUP BY status
ORDER BY status
`

// CountFetchLogsByStatusRow is one row of CountFetchLogsByStatus.
type CountFetchLogsByStatusRow struct {
	Status string
	Count  int64
}

// CountFetchLogsByStatus groups recorded load outcomes by status.
func (q *Queries) CountFetchLogsByStatus(ctx context.Context) ([]CountFetchLogsByStatusRow, error) {
	rows, err := q.db.QueryContext(ctx, countFetchLogsByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountFetchLogsByStatusRow
	for rows.Next() {
		var i CountFetchLogsByStatusRow
		if err := rows.Scan(&i.Status, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
