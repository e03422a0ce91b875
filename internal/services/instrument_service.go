// Package services provides business logic and orchestration on top of the
// core engine: instrument lifecycle, cached projections and budget reports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"nestegg/internal/amqp"
	"nestegg/internal/core"
)

// InstrumentStore is the persistence contract the services need.
type InstrumentStore interface {
	Save(ctx context.Context, in core.Instrument) (int64, error)
	LoadAll(ctx context.Context) ([]core.Instrument, error)
	Get(ctx context.Context, id int64) (core.Instrument, error)
	Delete(ctx context.Context, id int64) error
}

// ChangePublisher notifies downstream consumers of instrument changes.
type ChangePublisher interface {
	PublishInstrumentChanged(ctx context.Context, id int64, op string) error
}

// InstrumentService orchestrates instrument operations across storage and AMQP.
type InstrumentService struct {
	store     InstrumentStore
	publisher ChangePublisher
}

func NewInstrumentService(store InstrumentStore, publisher ChangePublisher) *InstrumentService {
	return &InstrumentService{store: store, publisher: publisher}
}

// Create resolves the entry-mode input into a canonical instrument, persists
// it and notifies the projection worker.
func (s *InstrumentService) Create(ctx context.Context, input core.InstrumentInput) (core.Instrument, error) {
	in, err := input.Resolve()
	if err != nil {
		return core.Instrument{}, fmt.Errorf("resolve instrument: %w", err)
	}

	id, err := s.store.Save(ctx, in)
	if err != nil {
		return core.Instrument{}, fmt.Errorf("save instrument: %w", err)
	}
	in.ID = id

	s.publish(ctx, id, amqp.OpUpsert)
	return in, nil
}

// Update re-resolves the input and overwrites the stored instrument.
func (s *InstrumentService) Update(ctx context.Context, id int64, input core.InstrumentInput) (core.Instrument, error) {
	in, err := input.Resolve()
	if err != nil {
		return core.Instrument{}, fmt.Errorf("resolve instrument: %w", err)
	}
	in.ID = id

	if _, err := s.store.Save(ctx, in); err != nil {
		return core.Instrument{}, fmt.Errorf("save instrument: %w", err)
	}

	s.publish(ctx, id, amqp.OpUpsert)
	return in, nil
}

func (s *InstrumentService) Get(ctx context.Context, id int64) (core.Instrument, error) {
	return s.store.Get(ctx, id)
}

func (s *InstrumentService) List(ctx context.Context) ([]core.Instrument, error) {
	return s.store.LoadAll(ctx)
}

func (s *InstrumentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, amqp.OpDelete)
	return nil
}

// publish is best-effort: the instrument is already persisted, so a broker
// outage degrades snapshot freshness instead of failing the request.
func (s *InstrumentService) publish(ctx context.Context, id int64, op string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping change message", "id", id, "op", op)
		return
	}
	if err := s.publisher.PublishInstrumentChanged(ctx, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish instrument change", "id", id, "op", op, "error", err)
	}
}
