package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/timemachine/internal/client/client"
	"github.com/dmitrijs2005/timemachine/internal/client/models"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// fakeAPI implements client.Client and records what it was asked.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	LoginToken string
	LoginErr   error
	ListItems  []models.Slice
	ListErr    error
	SearchRet  []models.Slice
	SearchErr  error
	AddErr     error
	UpdateErr  error
	RemoveErr  error

	// OnList runs inside List before it returns; lets tests look at the
	// view while a request is in flight.
	OnList func()

	LastToken    string
	LastUsername string
	LastPassword string
	LastDay      time.Time
	LastSearch   string
	LastContent  string
	LastAt       time.Time
	LastID       models.SliceID
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.LastToken = token
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(_ context.Context, username string, password []byte) (string, error) {
	f.record("login", "")
	f.LastUsername, f.LastPassword = username, string(password)
	return f.LoginToken, f.LoginErr
}

func (f *fakeAPI) List(_ context.Context, token string, day time.Time) ([]models.Slice, error) {
	f.record("list", token)
	f.LastDay = day
	if f.OnList != nil {
		f.OnList()
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.Slice{}, f.ListItems...), nil
}

func (f *fakeAPI) Search(_ context.Context, token, text string) ([]models.Slice, error) {
	f.record("search", token)
	f.LastSearch = text
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	return append([]models.Slice{}, f.SearchRet...), nil
}

func (f *fakeAPI) Add(_ context.Context, token, content string, at time.Time) error {
	f.record("add", token)
	f.LastContent, f.LastAt = content, at
	return f.AddErr
}

func (f *fakeAPI) Update(_ context.Context, token string, id models.SliceID, content string, at time.Time) error {
	f.record("update", token)
	f.LastID, f.LastContent, f.LastAt = id, content, at
	return f.UpdateErr
}

func (f *fakeAPI) Remove(_ context.Context, token string, id models.SliceID) error {
	f.record("remove", token)
	f.LastID = id
	return f.RemoveErr
}

type fakeTokens struct{ token string }

func (f *fakeTokens) Current() (string, bool) { return f.token, f.token != "" }

type fakeConfirmer struct {
	answer   bool
	err      error
	question string
	asked    int
}

func (f *fakeConfirmer) Confirm(_ context.Context, q string) (bool, error) {
	f.asked++
	f.question = q
	return f.answer, f.err
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func slice(id, content string, at time.Time) models.Slice {
	return models.Slice{ID: models.ID(id), Content: content, Time: models.NewTimestamp(at)}
}

// jan31 is a fixed "now" for view tests.
var jan31 = time.Date(2024, 1, 31, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return jan31 }
