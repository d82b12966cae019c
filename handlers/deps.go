package handlers

import (
	"context"

	"securecheck-api/models"
)

// Ledger is the read-only view of the stop table the handlers need.
// *datasource.Store satisfies it.
type Ledger interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	Query(ctx context.Context, query string) (*models.Table, error)
	Ping(ctx context.Context) error
}
