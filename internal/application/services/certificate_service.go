package services

import (
	"context"
	"fmt"

	"github.com/edutrack/core/internal/application/commands"
	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// CertificateService handles certificate reporting and issuance
type CertificateService struct {
	repo    ports.SnapshotRepository
	engine  *commands.Engine
	logger  *logger.Logger
	metrics ports.Metrics
}

var _ ports.CertificateService = (*CertificateService)(nil)

// NewCertificateService creates a new certificate service
func NewCertificateService(repo ports.SnapshotRepository, engine *commands.Engine, logger *logger.Logger, metrics ports.Metrics) *CertificateService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CertificateService{
		repo:    repo,
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// CertificatesPerCourse counts certificates per course id
func (s *CertificateService) CertificatesPerCourse(ctx context.Context) (map[string]int, error) {
	return queries.CertificatesPerCourse(s.repo.Load(ctx)), nil
}

// IssueCertificates creates the missing certificates for every qualifying
// (user, course) pair and persists the dataset, even when none were created.
func (s *CertificateService) IssueCertificates(ctx context.Context) (int, error) {
	snapshot := s.repo.Load(ctx)

	created := s.engine.IssueCertificates(snapshot)

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("failed to save certificates: %w", err)
	}

	s.metrics.CertificatesIssued(created)
	s.logger.LogMutation("certificates_issued", map[string]interface{}{
		"created": created,
	})

	return created, nil
}
