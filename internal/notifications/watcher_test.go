package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/dedup"
	"go-recruitart-client/internal/filter"
	"go-recruitart-client/internal/models"
)

type fakeReporter struct {
	jobs          []models.Job
	notifications []models.Notification
	errors        []error
}

func (f *fakeReporter) SendJob(job models.Job, score int) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeReporter) SendNotification(n models.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeReporter) SendError(err error) error {
	f.errors = append(f.errors, err)
	return nil
}

func newTestWatcher(t *testing.T, handler http.Handler) (*Watcher, *fakeReporter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rep := &fakeReporter{}
	w := NewWatcher(
		api.New(srv.URL, srv.Client()),
		filter.NewMatcher([]string{"golang"}, nil),
		dedup.NewSeenCache(t.TempDir(), "seen_items.json"),
		rep,
		0,
	)
	return w, rep
}

func platformHandler(t *testing.T, markedRead *[]int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/notifications/notifications/unread/":
			_, _ = w.Write([]byte(`[
				{"id": 1, "title": "Interview scheduled", "message": "Friday 10am", "is_read": false},
				{"id": 2, "title": "Application viewed", "message": "By Clinic", "is_read": false}
			]`))
		case "/notifications/notifications/mark_as_read/":
			var body struct {
				NotificationIDs []int `json:"notification_ids"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			*markedRead = append(*markedRead, body.NotificationIDs...)
			w.WriteHeader(http.StatusOK)
		case "/jobs/jobs/":
			_, _ = w.Write([]byte(`{"count": 2, "results": [
				{"id": 10, "title": "Golang Developer", "company_name": "Acme", "status": "active"},
				{"id": 11, "title": "Receptionist", "company_name": "Clinic", "status": "active"}
			]}`))
		default:
			t.Errorf("unexpected call to %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})
}

func TestPollDeliversAndDeduplicates(t *testing.T) {
	var markedRead []int
	w, rep := newTestWatcher(t, platformHandler(t, &markedRead))

	require.NoError(t, w.Poll(context.Background()))

	require.Len(t, rep.notifications, 2)
	assert.Equal(t, "Interview scheduled", rep.notifications[0].Title)
	assert.Equal(t, []int{1, 2}, markedRead)

	// only the matching job is reported
	require.Len(t, rep.jobs, 1)
	assert.Equal(t, "Golang Developer", rep.jobs[0].Title)

	// a second round reports nothing new
	require.NoError(t, w.Poll(context.Background()))
	assert.Len(t, rep.notifications, 2)
	assert.Len(t, rep.jobs, 1)
}

func TestPollSurfacesAPIFailures(t *testing.T) {
	w, _ := newTestWatcher(t, http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusInternalServerError)
	}))

	err := w.Poll(context.Background())
	assert.Error(t, err)
}
