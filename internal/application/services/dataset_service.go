package services

import (
	"context"

	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/ports"
)

// DatasetService exposes whole-dataset reads used by health checks and exports
type DatasetService struct {
	repo ports.SnapshotRepository
}

var _ ports.DatasetService = (*DatasetService)(nil)

// NewDatasetService creates a new dataset service
func NewDatasetService(repo ports.SnapshotRepository) *DatasetService {
	return &DatasetService{repo: repo}
}

func (s *DatasetService) Stats(ctx context.Context) (entities.DatasetStats, error) {
	return queries.Stats(s.repo.Load(ctx)), nil
}

func (s *DatasetService) Snapshot(ctx context.Context) (*entities.Snapshot, error) {
	return s.repo.Load(ctx), nil
}
