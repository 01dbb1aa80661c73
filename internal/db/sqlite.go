package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteClient manages the connection to SQLite.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens the SQLite database at path, creating the file if
// it does not exist.
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// Close closes the database connection.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// ExecDDL executes a single DDL statement.
func (c *SQLiteClient) ExecDDL(ctx context.Context, statement string) error {
	_, err := c.db.ExecContext(ctx, statement)
	return err
}
