// Package migrations holds the database schema of the leave calendar.
package migrations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

//go:embed schema.sql
var Schema string

// Apply creates every missing table and index. It is safe to run repeatedly.
func Apply(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
