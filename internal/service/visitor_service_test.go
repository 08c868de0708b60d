package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/breaker"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/jobs"
)

type dispatcherStub struct {
	mu   sync.Mutex
	jobs []jobs.Job
	err  error
}

func (d *dispatcherStub) TryEnqueue(job jobs.Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

type directoryStub struct {
	mu      sync.Mutex
	records []models.VisitorRecord
	err     error
	calls   int
}

func (d *directoryStub) UpsertVisitor(_ context.Context, record models.VisitorRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return d.err
	}
	d.records = append(d.records, record)
	return nil
}

func (d *directoryStub) synced() []models.VisitorRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.VisitorRecord(nil), d.records...)
}

func newVisitorFixture(queue SyncDispatcher, metrics *MetricsService) (*VisitorService, *NavigationService, *StateService, *stateStoreStub) {
	store := newStateStoreStub()
	state := NewStateService(store, metrics, nil)
	nav := NewNavigationService(state, nil, nil, metrics, nil)
	return NewVisitorService(state, nav, queue, nil, metrics, nil), nav, state, store
}

func TestSubmitContactMovesVisitorHome(t *testing.T) {
	ctx := context.Background()
	queue := &dispatcherStub{}
	svc, nav, state, _ := newVisitorFixture(queue, nil)

	before, err := nav.Navigate(ctx, visitor(), testDevice, models.PageCanteen)
	require.NoError(t, err)
	require.Equal(t, models.PageVisitorInfo, before.CurrentPage)

	st, err := svc.SubmitContact(ctx, visitor(), testDevice, dto.VisitorContactRequest{Name: " Asha ", Phone: "9000000000", Purpose: "Admission enquiry"})
	require.NoError(t, err)
	assert.Equal(t, models.PageVisitorHome, st.CurrentPage)
	assert.False(t, st.NeedsVisitorInfo)
	assert.Equal(t, models.OutcomeRendered, st.Render.Outcome)

	contact, found, err := state.VisitorContact(ctx, testDevice)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Asha", contact.Name)
	assert.Equal(t, "9000000000", contact.Phone)

	shadow, err := state.PrincipalShadow(ctx, testDevice, "v-1")
	require.NoError(t, err)
	require.NotNil(t, shadow)
	assert.Equal(t, "Asha", shadow.Name)

	require.Len(t, queue.jobs, 1)
	record, ok := queue.jobs[0].Payload.(models.VisitorRecord)
	require.True(t, ok)
	assert.Equal(t, VisitorSyncJobType, queue.jobs[0].Type)
	assert.Equal(t, testDevice, record.DeviceID)
	assert.Equal(t, "v-1", record.PrincipalID)
	assert.Equal(t, "Admission enquiry", record.Purpose)

	after, err := nav.Navigate(ctx, visitor(), testDevice, models.PageCanteen)
	require.NoError(t, err)
	assert.Equal(t, models.PageCanteen, after.CurrentPage)
}

func TestSubmitContactRequiresNameAndPhone(t *testing.T) {
	svc, _, _, store := newVisitorFixture(&dispatcherStub{}, nil)
	_, err := svc.SubmitContact(context.Background(), visitor(), testDevice, dto.VisitorContactRequest{Name: "Asha", Phone: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, store.sets)
}

func TestSubmitContactRejectsNonVisitors(t *testing.T) {
	svc, _, _, _ := newVisitorFixture(&dispatcherStub{}, nil)
	_, err := svc.SubmitContact(context.Background(), &models.Principal{ID: "s", Role: models.RoleStudent}, testDevice, dto.VisitorContactRequest{Name: "A", Phone: "1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrVisitorOnly.Code, appErrors.FromError(err).Code)

	_, err = svc.SubmitContact(context.Background(), nil, testDevice, dto.VisitorContactRequest{Name: "A", Phone: "1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestSubmitContactSurvivesFullQueue(t *testing.T) {
	metrics := NewMetricsService()
	svc, _, _, _ := newVisitorFixture(&dispatcherStub{err: jobs.ErrQueueFull}, metrics)

	st, err := svc.SubmitContact(context.Background(), visitor(), testDevice, dto.VisitorContactRequest{Name: "Asha", Phone: "9000000000"})
	require.NoError(t, err)
	assert.Equal(t, models.PageVisitorHome, st.CurrentPage)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.visitorSync.WithLabelValues(visitorSyncDropped)))
}

func TestSubmitContactWithoutSync(t *testing.T) {
	svc, _, _, _ := newVisitorFixture(nil, nil)
	st, err := svc.SubmitContact(context.Background(), visitor(), testDevice, dto.VisitorContactRequest{Name: "Asha", Phone: "9000000000"})
	require.NoError(t, err)
	assert.Equal(t, models.PageVisitorHome, st.CurrentPage)
}

func TestContactReportsCorruptRecordAsMissing(t *testing.T) {
	svc, _, _, store := newVisitorFixture(nil, nil)
	store.values["device-1:visitor_contact"] = "[]garbage"
	assert.False(t, svc.Contact(context.Background(), testDevice).HasContactInfo)

	store.values["device-1:visitor_contact"] = `{"name":"Asha","phone":"9000000000","purpose":"Visit"}`
	contact := svc.Contact(context.Background(), testDevice)
	assert.True(t, contact.HasContactInfo)
	assert.Equal(t, "Visit", contact.Purpose)
}

func TestVisitorSyncWorkerThroughQueue(t *testing.T) {
	directory := &directoryStub{}
	metrics := NewMetricsService()
	worker := NewVisitorSyncWorker(directory, nil, metrics, nil)
	queue := jobs.NewQueue("visitor-sync", worker.Handle, jobs.QueueConfig{Workers: 1, BufferSize: 4})
	queue.Start(context.Background())
	defer queue.Stop()

	svc, _, _, _ := newVisitorFixture(queue, metrics)
	_, err := svc.SubmitContact(context.Background(), visitor(), testDevice, dto.VisitorContactRequest{Name: "Asha", Phone: "9000000000"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(directory.synced()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Asha", directory.synced()[0].Name)
}

func TestVisitorSyncWorkerDropsAfterRetries(t *testing.T) {
	directory := &directoryStub{err: errors.New("permission denied")}
	metrics := NewMetricsService()
	worker := NewVisitorSyncWorker(directory, nil, metrics, nil)
	queue := jobs.NewQueue("visitor-sync", worker.Handle, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 1,
		RetryDelay: 5 * time.Millisecond,
		OnDrop:     worker.Dropped,
	})
	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, queue.TryEnqueue(jobs.Job{Type: VisitorSyncJobType, Payload: models.VisitorRecord{DeviceID: testDevice}}))
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.visitorSync.WithLabelValues(visitorSyncFailed)) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, directory.synced())
}

func TestVisitorSyncWorkerBreakerOpens(t *testing.T) {
	directory := &directoryStub{err: errors.New("unavailable")}
	cb := breaker.New(breaker.Settings{Name: "PostgreSQL-Visitors", ConsecutiveFailures: 2, Timeout: time.Minute}, nil)
	worker := NewVisitorSyncWorker(directory, cb, nil, nil)
	job := jobs.Job{Type: VisitorSyncJobType, Payload: models.VisitorRecord{DeviceID: testDevice}}

	require.Error(t, worker.Handle(context.Background(), job))
	require.Error(t, worker.Handle(context.Background(), job))
	err := worker.Handle(context.Background(), job)
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, directory.calls)
}

func TestVisitorSyncWorkerIgnoresBadPayload(t *testing.T) {
	worker := NewVisitorSyncWorker(&directoryStub{}, nil, nil, nil)
	assert.NoError(t, worker.Handle(context.Background(), jobs.Job{Payload: "nope"}))
}
