package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"nestegg/internal/amqp"
	"nestegg/internal/core"
)

type fakeStore struct {
	instruments map[int64]core.Instrument
	nextID      int64
	loadErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{instruments: map[int64]core.Instrument{}, nextID: 1}
}

func (f *fakeStore) Save(_ context.Context, in core.Instrument) (int64, error) {
	if in.ID == 0 {
		in.ID = f.nextID
		f.nextID++
	}
	f.instruments[in.ID] = in
	return in.ID, nil
}

func (f *fakeStore) LoadAll(_ context.Context) ([]core.Instrument, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]core.Instrument, 0, len(f.instruments))
	for _, in := range f.instruments {
		out = append(out, in)
	}
	// Match the deterministic ORDER BY maturity_date, id of the real repository.
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaturityDate.Before(out[j].MaturityDate) {
			return true
		}
		if out[j].MaturityDate.Before(out[i].MaturityDate) {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (core.Instrument, error) {
	in, ok := f.instruments[id]
	if !ok {
		return core.Instrument{}, errors.New("not found")
	}
	return in, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.instruments[id]; !ok {
		return errors.New("not found")
	}
	delete(f.instruments, id)
	return nil
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishInstrumentChanged(_ context.Context, id int64, op string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, op)
	return nil
}

func calculatedInput() core.CalculatedInput {
	return core.CalculatedInput{
		Name:                 "FD one",
		Kind:                 core.FixedDeposit,
		Principal:            100000,
		AnnualRate:           0.065,
		StartDate:            core.NewDate(2024, 1, 15),
		MaturityDate:         core.NewDate(2026, 1, 15),
		CompoundingFrequency: 4,
	}
}

func TestCreateResolvesAndPublishes(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewInstrumentService(store, pub)

	in, err := svc.Create(context.Background(), calculatedInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if in.MaturityValue <= in.Principal {
		t.Errorf("expected derived maturity value above principal, got %v", in.MaturityValue)
	}
	if len(pub.published) != 1 || pub.published[0] != amqp.OpUpsert {
		t.Errorf("expected one upsert publish, got %v", pub.published)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewInstrumentService(newFakeStore(), &fakePublisher{})

	bad := calculatedInput()
	bad.MaturityDate = bad.StartDate
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewInstrumentService(store, pub)

	in, err := svc.Create(context.Background(), calculatedInput())
	if err != nil {
		t.Fatalf("Create should not fail on publish error: %v", err)
	}
	if _, err := store.Get(context.Background(), in.ID); err != nil {
		t.Error("instrument should still be persisted")
	}
}

func TestCreateWithoutPublisher(t *testing.T) {
	svc := NewInstrumentService(newFakeStore(), nil)
	if _, err := svc.Create(context.Background(), calculatedInput()); err != nil {
		t.Fatalf("Create without publisher: %v", err)
	}
}

func TestUpdateKeepsID(t *testing.T) {
	store := newFakeStore()
	svc := NewInstrumentService(store, &fakePublisher{})

	created, err := svc.Create(context.Background(), calculatedInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	changed := calculatedInput()
	changed.Principal = 200000
	updated, err := svc.Update(context.Background(), created.ID, changed)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed from %d to %d", created.ID, updated.ID)
	}

	got, _ := svc.Get(context.Background(), created.ID)
	if got.Principal != 200000 {
		t.Errorf("principal = %v, want 200000", got.Principal)
	}
}

func TestDeletePublishes(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewInstrumentService(store, pub)

	created, err := svc.Create(context.Background(), calculatedInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(pub.published) != 2 || pub.published[1] != amqp.OpDelete {
		t.Errorf("expected upsert then delete, got %v", pub.published)
	}
}
