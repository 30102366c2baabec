package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// FileSnapshotRepository keeps the whole dataset in a single JSON file.
// Every Load reads the file from scratch and every Save rewrites it in full.
// There is no locking: concurrent writers race and the last full write wins.
type FileSnapshotRepository struct {
	path    string
	logger  *logger.Logger
	metrics ports.Metrics

	mu     sync.Mutex
	recent [recentWrites][32]byte
	next   int
}

// NewFileSnapshotRepository creates a repository backed by the file at path
func NewFileSnapshotRepository(path string, appLogger *logger.Logger, metrics ports.Metrics) *FileSnapshotRepository {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &FileSnapshotRepository{
		path:    path,
		logger:  appLogger.WithComponent("store"),
		metrics: metrics,
	}
}

// Path returns the data file location
func (r *FileSnapshotRepository) Path() string {
	return r.path
}

// Load reads the data file. A missing or unparsable file yields an empty snapshot.
func (r *FileSnapshotRepository) Load(ctx context.Context) *entities.Snapshot {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.fallback(err)
		return entities.NewSnapshot()
	}

	snapshot, err := Decode(data)
	if err != nil {
		r.fallback(err)
		return entities.NewSnapshot()
	}

	return snapshot
}

// Save overwrites the data file with the full snapshot
func (r *FileSnapshotRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	start := time.Now()

	data, err := Encode(snapshot)
	if err == nil {
		r.rememberWrite(data)
		err = os.WriteFile(r.path, data, 0o644)
	}

	r.metrics.SnapshotSaved(time.Since(start), err)
	if err != nil {
		r.logger.LogStoreEvent("save_failed", r.path, err)
		return fmt.Errorf("save snapshot: %w", err)
	}

	r.logger.LogStoreEvent("saved", r.path, nil)
	return nil
}

func (r *FileSnapshotRepository) fallback(err error) {
	r.metrics.SnapshotLoadFallback()
	if os.IsNotExist(err) {
		r.logger.LogStoreEvent("missing", r.path, nil)
		return
	}
	r.logger.LogStoreEvent("load_fallback", r.path, err)
}

// Decode parses the data file format. Records are decoded field by field and
// values the model cannot hold are kept raw, so only invalid JSON or a
// collection that is not an array of objects is an error.
func Decode(data []byte) (*entities.Snapshot, error) {
	var snapshot entities.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snapshot.Normalize()
	return &snapshot, nil
}

// Encode renders a snapshot in the data file format: two-space indented JSON
func Encode(snapshot *entities.Snapshot) ([]byte, error) {
	snapshot.Normalize()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}
