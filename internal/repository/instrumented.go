package repository

import (
	"context"
	"errors"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_store_operations_total",
			Help: "Contact store operations by backend, operation and result.",
		},
		[]string{"backend", "op", "result"},
	)

	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_store_operation_duration_seconds",
			Help:    "Duration of contact store operations in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

// InstrumentedStore records Prometheus metrics around another ContactStore.
// Ping and Describe are forwarded when the wrapped store supports them.
type InstrumentedStore struct {
	next    ContactStore
	backend string
}

// NewInstrumentedStore wraps next, labelling its metrics with backend.
func NewInstrumentedStore(next ContactStore, backend string) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

var (
	_ ContactStore = (*InstrumentedStore)(nil)
	_ DB           = (*InstrumentedStore)(nil)
	_ Describer    = (*InstrumentedStore)(nil)
)

func (s *InstrumentedStore) Init(ctx context.Context) error {
	return s.observe("init", func() error { return s.next.Init(ctx) })
}

func (s *InstrumentedStore) Append(ctx context.Context, rec *model.ContactRecord) error {
	return s.observe("append", func() error { return s.next.Append(ctx, rec) })
}

func (s *InstrumentedStore) ListAll(ctx context.Context) ([]*model.ContactRecord, error) {
	var records []*model.ContactRecord
	err := s.observe("list", func() error {
		var err error
		records, err = s.next.ListAll(ctx)
		return err
	})
	return records, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	db, ok := s.next.(DB)
	if !ok {
		return nil
	}
	return s.observe("ping", func() error { return db.Ping(ctx) })
}

func (s *InstrumentedStore) Describe() StoreInfo {
	if d, ok := s.next.(Describer); ok {
		return d.Describe()
	}
	return StoreInfo{Backend: s.backend}
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}

func (s *InstrumentedStore) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	storeOperationDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
	storeOperationsTotal.WithLabelValues(s.backend, op, resultLabel(err)).Inc()
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
