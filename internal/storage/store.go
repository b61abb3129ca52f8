package storage

import (
	"context"

	"mmnn/internal/model"
)

// Store persists learn-run history: one record per run plus its
// per-window mean squared error trace.
type Store interface {
	Init(ctx context.Context) error
	SaveRunRecord(ctx context.Context, record model.RunRecord) error
	GetRunRecord(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRunRecords(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveErrorHistory(ctx context.Context, runID string, history []float64) error
	GetErrorHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
