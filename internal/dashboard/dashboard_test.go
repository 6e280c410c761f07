package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI counts calls and serves canned data.
type fakeAPI struct {
	calls map[string]int
	fail  error

	created []backend.CreateEventInput
}

func newFakeAPI() *fakeAPI { return &fakeAPI{calls: map[string]int{}} }

func (f *fakeAPI) hit(name string) error {
	f.calls[name]++
	return f.fail
}

func (f *fakeAPI) ListEvents(context.Context) ([]backend.Event, error) {
	if err := f.hit("ListEvents"); err != nil {
		return nil, err
	}
	return []backend.Event{{ID: "e1", Title: "Gala", Status: backend.StatusDraft}}, nil
}

func (f *fakeAPI) GetEvent(_ context.Context, id string) (backend.Event, error) {
	if err := f.hit("GetEvent"); err != nil {
		return backend.Event{}, err
	}
	return backend.Event{ID: id, Title: "Gala"}, nil
}

func (f *fakeAPI) CreateEvent(_ context.Context, in backend.CreateEventInput) (backend.Event, error) {
	if err := f.hit("CreateEvent"); err != nil {
		return backend.Event{}, err
	}
	f.created = append(f.created, in)
	return backend.Event{ID: "e2", Title: in.Title, Status: backend.StatusDraft}, nil
}

func (f *fakeAPI) PublishEvent(_ context.Context, id string) (backend.Event, error) {
	if err := f.hit("PublishEvent"); err != nil {
		return backend.Event{}, err
	}
	return backend.Event{ID: id, Status: backend.StatusPublished}, nil
}

func (f *fakeAPI) ArchiveEvent(_ context.Context, id string) (backend.Event, error) {
	if err := f.hit("ArchiveEvent"); err != nil {
		return backend.Event{}, err
	}
	return backend.Event{ID: id, Status: backend.StatusArchived}, nil
}

func (f *fakeAPI) EventStats(context.Context) (backend.EventStats, error) {
	return backend.EventStats{Total: 1}, f.hit("EventStats")
}

func (f *fakeAPI) EventMetrics(context.Context, string) (backend.EventMetrics, error) {
	return backend.EventMetrics{AssignmentsByRole: map[string]int{}}, f.hit("EventMetrics")
}

func (f *fakeAPI) ListAssignments(context.Context, string) ([]backend.Assignment, error) {
	return []backend.Assignment{{ID: "a1"}}, f.hit("ListAssignments")
}

func (f *fakeAPI) CreateAssignment(_ context.Context, eventID string, in backend.CreateAssignmentInput) (backend.Assignment, error) {
	return backend.Assignment{ID: "a2", EventID: eventID, UserID: in.UserID, RoleName: in.RoleName}, f.hit("CreateAssignment")
}

func (f *fakeAPI) DeleteAssignment(context.Context, string, string) error {
	return f.hit("DeleteAssignment")
}

func (f *fakeAPI) ListCheckIns(context.Context, string) ([]backend.CheckIn, error) {
	return []backend.CheckIn{}, f.hit("ListCheckIns")
}

func (f *fakeAPI) CreateCheckIn(_ context.Context, eventID string, in backend.CreateCheckInInput) (backend.CheckIn, error) {
	return backend.CheckIn{ID: "c1", EventID: eventID, UserID: in.UserID}, f.hit("CreateCheckIn")
}

func (f *fakeAPI) ListUsers(context.Context) ([]backend.User, error) {
	return []backend.User{{ID: "u1"}}, f.hit("ListUsers")
}

func TestEventsCreateInvalidatesList(t *testing.T) {
	api := newFakeAPI()
	ev := NewEvents(api, query.New())
	ctx := context.Background()

	_, err := ev.List(ctx)
	require.NoError(t, err)
	_, err = ev.Stats(ctx)
	require.NoError(t, err)
	_, _ = ev.List(ctx)
	assert.Equal(t, 1, api.calls["ListEvents"])

	created, notice, err := ev.Create(ctx, forms.EventInput{
		Title:    "Spring Gala",
		StartAt:  "2025-05-01T18:00:00Z",
		EndAt:    "2025-05-01T23:00:00Z",
		Capacity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "e2", created.ID)
	assert.Equal(t, Success("Event created successfully"), notice)

	_, _ = ev.List(ctx)
	_, _ = ev.Stats(ctx)
	assert.Equal(t, 2, api.calls["ListEvents"])
	assert.Equal(t, 2, api.calls["EventStats"])
}

func TestEventsCreateRejectsInvalidInputLocally(t *testing.T) {
	api := newFakeAPI()
	ev := NewEvents(api, query.New())

	_, notice, err := ev.Create(context.Background(), forms.EventInput{
		Title:    "Gala",
		StartAt:  "2025-05-01T18:00:00Z",
		EndAt:    "2025-05-01T18:00:00Z",
		Capacity: 10,
	})
	require.Error(t, err)
	assert.Equal(t, LevelError, notice.Level)
	assert.Equal(t, "End date must be after start date", notice.Text)
	assert.Zero(t, api.calls["CreateEvent"])
}

func TestMutationFailureKeepsCache(t *testing.T) {
	api := newFakeAPI()
	cache := query.New()
	ev := NewEvents(api, cache)
	ctx := context.Background()

	_, err := ev.List(ctx)
	require.NoError(t, err)

	api.fail = &backend.APIError{Status: http.StatusConflict, Message: "Event already published"}
	_, notice, err := ev.Publish(ctx, "e1")
	require.Error(t, err)
	assert.Equal(t, Notice{Level: LevelError, Text: "Event already published"}, notice)

	api.fail = errors.New("connection reset")
	_, notice, _ = ev.Archive(ctx, "e1")
	assert.Equal(t, "Failed to archive event", notice.Text)

	assert.Equal(t, 1, cache.Len(), "failed mutations invalidate nothing")
}

func TestPublishInvalidatesDetail(t *testing.T) {
	api := newFakeAPI()
	ev := NewEvents(api, query.New())
	ctx := context.Background()

	_, _ = ev.Get(ctx, "e1")
	_, _ = ev.Metrics(ctx, "e1")
	_, notice, err := ev.Publish(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Event published successfully", notice.Text)

	_, _ = ev.Get(ctx, "e1")
	_, _ = ev.Metrics(ctx, "e1")
	assert.Equal(t, 2, api.calls["GetEvent"])
	assert.Equal(t, 2, api.calls["EventMetrics"])
}

func TestAssignmentsAndCheckInsInvalidateMetrics(t *testing.T) {
	api := newFakeAPI()
	cache := query.New()
	ev := NewEvents(api, cache)
	as := NewAssignments(api, cache)
	ci := NewCheckIns(api, cache)
	ctx := context.Background()

	_, _ = ev.Metrics(ctx, "e1")
	_, _ = as.List(ctx, "e1")
	_, _ = ci.List(ctx, "e1")
	_, _ = as.List(ctx, "e2")

	_, notice, err := as.Add(ctx, "e1", forms.AssignmentForm{UserID: "u1", RoleName: "Usher"})
	require.NoError(t, err)
	assert.Equal(t, "Assignment created successfully", notice.Text)

	_, _ = ev.Metrics(ctx, "e1")
	_, _ = as.List(ctx, "e1")
	_, _ = as.List(ctx, "e2")
	assert.Equal(t, 2, api.calls["EventMetrics"])
	assert.Equal(t, 3, api.calls["ListAssignments"], "other events stay cached")

	_, notice, err = ci.Record(ctx, "e1", forms.CheckInForm{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "Check-in recorded successfully", notice.Text)
	_, _ = ci.List(ctx, "e1")
	_, _ = ev.Metrics(ctx, "e1")
	assert.Equal(t, 2, api.calls["ListCheckIns"])
	assert.Equal(t, 3, api.calls["EventMetrics"])

	notice, err = as.Remove(ctx, "e1", "a2")
	require.NoError(t, err)
	assert.Equal(t, "Assignment deleted successfully", notice.Text)
}

func TestStaffingValidationNotices(t *testing.T) {
	api := newFakeAPI()
	cache := query.New()

	_, notice, err := NewAssignments(api, cache).Add(context.Background(), "e1", forms.AssignmentForm{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, "Please fill in all fields", notice.Text)

	_, notice, err = NewCheckIns(api, cache).Record(context.Background(), "e1", forms.CheckInForm{})
	require.Error(t, err)
	assert.Equal(t, "Please select a user", notice.Text)

	assert.Zero(t, api.calls["CreateAssignment"])
	assert.Zero(t, api.calls["CreateCheckIn"])
}

func TestUsersListCached(t *testing.T) {
	api := newFakeAPI()
	users := NewUsers(api, query.New())
	for range 3 {
		got, err := users.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 1, api.calls["ListUsers"])
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "May 1, 2025", formatDate("2025-05-01T18:00:00Z", time.UTC))
	assert.Equal(t, "May 1, 2025 at 6:05 PM", formatDateTime("2025-05-01T18:05:00Z", time.UTC))
	assert.Equal(t, "May 1, 2025 • 6:00 PM - 11:00 PM",
		formatDateRange("2025-05-01T18:00:00Z", "2025-05-01T23:00:00Z", time.UTC))
	assert.Equal(t, "May 1 - May 3, 2025",
		formatDateRange("2025-05-01T18:00:00Z", "2025-05-03T02:00:00Z", time.UTC))
	assert.Equal(t, "soon", formatDate("soon", time.UTC))
	assert.Equal(t, "a - b", formatDateRange("a", "b", time.UTC))
}
