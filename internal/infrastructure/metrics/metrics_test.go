package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/edutrack/core/internal/ports"
)

var _ ports.Metrics = (*Metrics)(nil)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.CertificatesIssued(3)
	m.CertificatesIssued(0)
	m.CoursesPruned(2)
	m.ProgressIncremented()
	m.RecordCreated("course")
	m.RecordCreated("course")
	m.SnapshotSaved(time.Millisecond, nil)
	m.SnapshotSaved(time.Millisecond, errors.New("disk full"))
	m.SnapshotLoadFallback()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.certificatesIssued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.coursesPruned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.progressIncrements))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordsCreated.WithLabelValues("course")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotSaves.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadFallbacks))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.CoursesPruned(1)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.coursesPruned))
}
