package ports

import (
	"context"
	"time"

	"github.com/edutrack/core/internal/domain/entities"
)

// SnapshotRepository reads and writes the whole dataset at once.
type SnapshotRepository interface {
	// Load never fails: an unreadable or corrupt store yields an empty snapshot.
	Load(ctx context.Context) *entities.Snapshot
	// Save overwrites the store with the given snapshot.
	Save(ctx context.Context, snapshot *entities.Snapshot) error
}

// Metrics receives domain events worth counting
type Metrics interface {
	ProgressIncremented()
	RecordCreated(kind string)
	CertificatesIssued(n int)
	CoursesPruned(n int)
	SnapshotSaved(d time.Duration, err error)
	SnapshotLoadFallback()
	StoreChangedExternally()
}

// NopMetrics discards every event
type NopMetrics struct{}

func (NopMetrics) ProgressIncremented() {}
func (NopMetrics) RecordCreated(string) {}
func (NopMetrics) CertificatesIssued(int) {}
func (NopMetrics) CoursesPruned(int) {}
func (NopMetrics) SnapshotSaved(time.Duration, error) {}
func (NopMetrics) SnapshotLoadFallback() {}
func (NopMetrics) StoreChangedExternally() {}
