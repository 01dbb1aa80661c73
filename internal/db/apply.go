package db

import (
	"context"
	"fmt"
	"strings"
)

// DDLExecutor abstracts the three clients for schema materialization.
type DDLExecutor interface {
	ExecDDL(ctx context.Context, statement string) error
}

// Apply executes the given DDL statements in order. The first failure
// aborts; earlier statements are not rolled back, matching the fail-fast
// contract of the rest of the tool.
func Apply(ctx context.Context, exec DDLExecutor, statements []string) error {
	for _, statement := range statements {
		if err := exec.ExecDDL(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(statement), err)
		}
	}
	return nil
}

func firstLine(statement string) string {
	if i := strings.IndexByte(statement, '\n'); i >= 0 {
		return statement[:i]
	}
	return statement
}
