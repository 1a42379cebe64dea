package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condohub/condoctl/internal/model"
	"github.com/condohub/condoctl/internal/notifier"
	"github.com/condohub/condoctl/pkg/errors"
)

type fakeClient struct {
	mu          sync.Mutex
	listFns     []func(ctx context.Context) ([]model.Denuncia, error)
	idx         int
	deactivated []int
	deactErr    error
}

func (f *fakeClient) ListAll(ctx context.Context) ([]model.Denuncia, error) {
	f.mu.Lock()
	fn := f.listFns[f.idx]
	if f.idx < len(f.listFns)-1 {
		f.idx++
	}
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeClient) Deactivate(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deactErr != nil {
		return f.deactErr
	}
	f.deactivated = append(f.deactivated, id)
	return nil
}

func staticList(records ...model.Denuncia) func(ctx context.Context) ([]model.Denuncia, error) {
	return func(ctx context.Context) ([]model.Denuncia, error) { return records, nil }
}

func newTestController(t *testing.T, fake *fakeClient) (*ListController[model.Denuncia], *notifier.Center) {
	t.Helper()
	center := notifier.NewCenter(notifier.WithTTL(time.Minute))
	t.Cleanup(center.Close)
	ctrl := NewListController[model.Denuncia](fake, center, "denuncia",
		WithDebounce[model.Denuncia](0),
	)
	t.Cleanup(ctrl.Close)
	return ctrl, center
}

func TestLoadSuccess(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	ctrl, _ := newTestController(t, fake)

	assert.Equal(t, StateIdle, ctrl.State())
	ctrl.Load(context.Background())

	assert.Equal(t, StateLoaded, ctrl.State())
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 1, ctrl.Filtered()[0].ID)
	assert.Equal(t, EmptyNone, ctrl.Empty())
}

func TestLoadFailureEntersErrorState(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		func(ctx context.Context) ([]model.Denuncia, error) {
			return nil, errors.NewNetwork("cannot reach backend", nil)
		},
	}}
	ctrl, _ := newTestController(t, fake)

	ctrl.Load(context.Background())

	assert.Equal(t, StateError, ctrl.State())
	assert.Equal(t, "cannot reach backend", ctrl.ErrorMessage())
	assert.Empty(t, ctrl.Filtered())
}

func TestLoadExcludesInactiveRecords(t *testing.T) {
	inactive := denuncia(2, "Vazamento", "Cano", model.DenunciaAberta, model.PrioridadeAlta)
	inactive.Ativa = false
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(
			denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta),
			inactive,
		),
	}}
	ctrl, _ := newTestController(t, fake)

	ctrl.Load(context.Background())

	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 1, ctrl.Filtered()[0].ID)
}

func TestAllInactiveCountsAsNoRecords(t *testing.T) {
	inactive := denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)
	inactive.Ativa = false
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(inactive),
	}}
	ctrl, _ := newTestController(t, fake)

	ctrl.Load(context.Background())

	assert.Empty(t, ctrl.Filtered())
	assert.Equal(t, EmptyNoRecords, ctrl.Empty())
}

func TestFilterChangeDoesNotRefetch(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(
			denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta),
			denuncia(2, "Vazamento", "Cano", model.DenunciaResolvida, model.PrioridadeBaixa),
		),
	}}
	ctrl, _ := newTestController(t, fake)
	ctrl.Load(context.Background())

	before := fake.idx
	ctrl.SetFieldFilter(model.FieldStatus, model.DenunciaAberta)

	assert.Equal(t, before, fake.idx, "categorical filter must not trigger a fetch")
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 1, ctrl.Filtered()[0].ID)
}

func TestEmptyStatesAreDistinct(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(),
		staticList(denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	ctrl, _ := newTestController(t, fake)

	ctrl.Load(context.Background())
	assert.Equal(t, EmptyNoRecords, ctrl.Empty())

	ctrl.Load(context.Background())
	ctrl.SetSearchText("xyz")
	assert.Equal(t, EmptyNoMatches, ctrl.Empty())
}

func TestDeactivateReloadsAndNotifies(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(
			denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta),
			denuncia(2, "Vazamento", "Cano", model.DenunciaAberta, model.PrioridadeAlta),
		),
		staticList(denuncia(2, "Vazamento", "Cano", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	ctrl, center := newTestController(t, fake)
	ctrl.Load(context.Background())

	ctrl.RequestDelete(1)
	assert.True(t, ctrl.Confirmation().Open())
	ctrl.ConfirmDelete(context.Background())

	assert.Equal(t, []int{1}, fake.deactivated)
	assert.Equal(t, StateLoaded, ctrl.State())
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 2, ctrl.Filtered()[0].ID)

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notifier.SeveritySuccess, active[0].Severity)
}

func TestDeactivateFailureLeavesCollection(t *testing.T) {
	fake := &fakeClient{
		listFns: []func(context.Context) ([]model.Denuncia, error){
			staticList(denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)),
		},
		deactErr: errors.NewNotFound("denuncia", nil),
	}
	ctrl, center := newTestController(t, fake)
	ctrl.Load(context.Background())

	ctrl.RequestDelete(1)
	ctrl.ConfirmDelete(context.Background())

	// Stale collection stays; consistency is re-derived from the server only.
	require.Len(t, ctrl.Filtered(), 1)
	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notifier.SeverityError, active[0].Severity)
}

func TestCancelDeleteHasNoSideEffects(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	ctrl, center := newTestController(t, fake)
	ctrl.Load(context.Background())

	ctrl.RequestDelete(1)
	ctrl.CancelDelete()

	assert.False(t, ctrl.Confirmation().Open())
	assert.Empty(t, fake.deactivated)
	assert.Empty(t, center.Active())
	require.Len(t, ctrl.Filtered(), 1)
}

func TestOverlappingLoadsLatestWins(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		func(ctx context.Context) ([]model.Denuncia, error) {
			close(started)
			<-release
			return []model.Denuncia{denuncia(1, "stale", "old snapshot", model.DenunciaAberta, model.PrioridadeAlta)}, nil
		},
		staticList(denuncia(2, "fresh", "new snapshot", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	ctrl, _ := newTestController(t, fake)

	done := make(chan struct{})
	go func() {
		ctrl.Load(context.Background())
		close(done)
	}()
	<-started

	// A newer load completes while the first is still in flight.
	ctrl.Load(context.Background())
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 2, ctrl.Filtered()[0].ID)

	close(release)
	<-done

	// The stale response must have been discarded.
	require.Len(t, ctrl.Filtered(), 1)
	assert.Equal(t, 2, ctrl.Filtered()[0].ID)
	assert.Equal(t, StateLoaded, ctrl.State())
}

func TestSearchDebounceCollapsesKeystrokes(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(
			denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta),
			denuncia(2, "Vazamento", "Cano", model.DenunciaAberta, model.PrioridadeAlta),
		),
	}}
	center := notifier.NewCenter(notifier.WithTTL(time.Minute))
	t.Cleanup(center.Close)
	ctrl := NewListController[model.Denuncia](fake, center, "denuncia",
		WithDebounce[model.Denuncia](20*time.Millisecond),
	)
	t.Cleanup(ctrl.Close)
	ctrl.Load(context.Background())

	ctrl.SetSearchText("v")
	ctrl.SetSearchText("va")
	ctrl.SetSearchText("vazamento")

	// Not applied yet.
	assert.Len(t, ctrl.Filtered(), 2)

	assert.Eventually(t, func() bool {
		filtered := ctrl.Filtered()
		return len(filtered) == 1 && filtered[0].ID == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "vazamento", ctrl.Criteria().Text)
}

func TestCloseCancelsPendingDebounce(t *testing.T) {
	fake := &fakeClient{listFns: []func(context.Context) ([]model.Denuncia, error){
		staticList(denuncia(1, "Barulho", "Som alto", model.DenunciaAberta, model.PrioridadeAlta)),
	}}
	center := notifier.NewCenter(notifier.WithTTL(time.Minute))
	t.Cleanup(center.Close)
	ctrl := NewListController[model.Denuncia](fake, center, "denuncia",
		WithDebounce[model.Denuncia](10*time.Millisecond),
	)
	ctrl.Load(context.Background())

	ctrl.SetSearchText("xyz")
	ctrl.Close()
	time.Sleep(30 * time.Millisecond)

	// The pending recompute was canceled, not applied after close.
	assert.Equal(t, "", ctrl.Criteria().Text)
}

func TestSortAppliedAfterFiltering(t *testing.T) {
	now := time.Now()
	eventos := []model.Evento{
		{ID: 1, Titulo: "Festa", Descricao: "x", DataEvento: now.Add(48 * time.Hour), Ativo: true},
		{ID: 2, Titulo: "Assembleia", Descricao: "y", DataEvento: now.Add(2 * time.Hour), Ativo: true},
		{ID: 3, Titulo: "Mutirão", Descricao: "z", DataEvento: now.Add(24 * time.Hour), Ativo: true},
	}
	fake := &fakeEventoClient{records: eventos}
	center := notifier.NewCenter(notifier.WithTTL(time.Minute))
	t.Cleanup(center.Close)
	ctrl := NewListController[model.Evento](fake, center, "evento",
		WithDebounce[model.Evento](0),
		WithSort[model.Evento](func(a, b model.Evento) bool { return a.DataEvento.Before(b.DataEvento) }),
	)
	t.Cleanup(ctrl.Close)

	ctrl.Load(context.Background())

	filtered := ctrl.Filtered()
	require.Len(t, filtered, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{filtered[0].ID, filtered[1].ID, filtered[2].ID})
}

type fakeEventoClient struct {
	records []model.Evento
}

func (f *fakeEventoClient) ListAll(ctx context.Context) ([]model.Evento, error) {
	return f.records, nil
}

func (f *fakeEventoClient) Deactivate(ctx context.Context, id int) error { return nil }
