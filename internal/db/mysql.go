package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient manages the connection to MySQL.
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient connects to MySQL using a driver connection string
// (user:pass@tcp(host:port)/database).
func NewMySQLClient(ctx context.Context, connString string) (*MySQLClient, error) {
	db, err := sql.Open("mysql", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLClient{db: db}, nil
}

// Close closes the database connection.
func (c *MySQLClient) Close() error {
	return c.db.Close()
}

// ExecDDL executes a single DDL statement.
func (c *MySQLClient) ExecDDL(ctx context.Context, statement string) error {
	_, err := c.db.ExecContext(ctx, statement)
	return err
}
