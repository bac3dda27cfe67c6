package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/timemachine/internal/client/client"
	"github.com/dmitrijs2005/timemachine/internal/client/models"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// TokenSource hands out the current session token.
type TokenSource interface {
	Current() (string, bool)
}

// Snapshot is a copy of the view at one moment.
type Snapshot struct {
	Date       time.Time
	Searching  bool
	SearchText string
	Items      []models.Slice
	Loading    bool
}

type ViewOption func(*ViewState)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) ViewOption {
	return func(v *ViewState) { v.now = now }
}

// ViewState is what the user is looking at: either the slices of one
// calendar day (browsing) or the results of a text search (searching).
//
// Requests are made with the lock released and are neither cancelled nor
// ordered: when two loads overlap, whichever response arrives last decides
// the list.
type ViewState struct {
	api     client.Client
	session TokenSource
	log     logging.Logger
	now     func() time.Time

	mu         sync.Mutex
	date       time.Time
	searching  bool
	searchText string
	items      []models.Slice
	loading    bool
	observers  []func(Snapshot)
}

func NewViewState(api client.Client, session TokenSource, log logging.Logger, opts ...ViewOption) *ViewState {
	v := &ViewState{
		api:     api,
		session: session,
		log:     log.With("component", "view"),
		now:     time.Now,
		items:   []models.Slice{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.date = v.now()
	return v
}

// OnChange registers fn to be called with a fresh snapshot after every
// change. Observers run on the goroutine that made the change, outside the
// lock.
func (v *ViewState) OnChange(fn func(Snapshot)) {
	v.mu.Lock()
	v.observers = append(v.observers, fn)
	v.mu.Unlock()
}

func (v *ViewState) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *ViewState) snapshotLocked() Snapshot {
	return Snapshot{
		Date:       v.date,
		Searching:  v.searching,
		SearchText: v.searchText,
		Items:      slices.Clone(v.items),
		Loading:    v.loading,
	}
}

// update applies fn under the lock and then notifies observers.
func (v *ViewState) update(fn func()) {
	v.mu.Lock()
	fn()
	snap := v.snapshotLocked()
	observers := slices.Clone(v.observers)
	v.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

// Item returns the slice at index in the visible list.
func (v *ViewState) Item(index int) (models.Slice, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index < 0 || index >= len(v.items) {
		return models.Slice{}, false
	}
	return v.items[index], true
}

// Load fetches the slices of the current date.
func (v *ViewState) Load(ctx context.Context) error {
	token, ok := v.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	var day time.Time
	v.update(func() {
		day = v.date
		v.items = []models.Slice{}
		v.loading = true
	})

	items, err := v.api.List(ctx, token, day)
	v.update(func() {
		if err == nil {
			v.items = items
		}
		v.loading = false
	})
	if err != nil {
		v.logFailure(ctx, "list failed", err)
		return err
	}
	return nil
}

// Search switches to search mode and fetches slices matching query. A blank
// query leaves search mode instead.
func (v *ViewState) Search(ctx context.Context, query string) error {
	token, ok := v.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if strings.TrimSpace(query) == "" {
		v.update(func() { v.searchText = query })
		return v.ClearSearch(ctx)
	}

	v.update(func() {
		v.searchText = query
		v.searching = true
		v.items = []models.Slice{}
		v.loading = true
	})

	items, err := v.api.Search(ctx, token, query)
	v.update(func() {
		if err == nil {
			v.items = items
		}
		v.loading = false
	})
	if err != nil {
		v.logFailure(ctx, "search failed", err)
		return err
	}
	return nil
}

// ClearSearch goes back to browsing the current date. It does nothing when
// not searching.
func (v *ViewState) ClearSearch(ctx context.Context) error {
	if _, ok := v.session.Current(); !ok {
		return ErrNotAuthenticated
	}

	var wasSearching bool
	v.mu.Lock()
	wasSearching = v.searching
	v.mu.Unlock()
	if !wasSearching {
		return nil
	}

	v.update(func() {
		v.searching = false
		v.searchText = ""
	})
	return v.Load(ctx)
}

// ChangeDate moves the cursor by offset days and reloads. Search mode is
// left as it is.
func (v *ViewState) ChangeDate(ctx context.Context, offset int) error {
	if _, ok := v.session.Current(); !ok {
		return ErrNotAuthenticated
	}
	v.update(func() { v.date = v.date.AddDate(0, 0, offset) })
	return v.Load(ctx)
}

// SetDate moves the cursor to day and reloads.
func (v *ViewState) SetDate(ctx context.Context, day time.Time) error {
	if _, ok := v.session.Current(); !ok {
		return ErrNotAuthenticated
	}
	v.update(func() { v.date = day })
	return v.Load(ctx)
}

func (v *ViewState) Today(ctx context.Context) error {
	return v.SetDate(ctx, v.now())
}

// Refresh repeats whatever produced the current list.
func (v *ViewState) Refresh(ctx context.Context) error {
	v.mu.Lock()
	searching, text := v.searching, v.searchText
	v.mu.Unlock()

	if searching {
		return v.Search(ctx, text)
	}
	return v.Load(ctx)
}

// Add creates a slice at time at. The list is never patched locally: the
// day of the new slice is (re)loaded from the server instead.
func (v *ViewState) Add(ctx context.Context, content string, at time.Time) error {
	if models.Blank(content) {
		return ErrEmptyContent
	}
	token, ok := v.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := v.api.Add(ctx, token, content, at); err != nil {
		v.logFailure(ctx, "add failed", err)
		return err
	}

	v.mu.Lock()
	sameDay := models.SameDay(at, v.date)
	v.mu.Unlock()

	if sameDay {
		return v.Load(ctx)
	}
	return v.SetDate(ctx, at)
}

// Update changes a slice and, once the server agrees, patches the first
// visible slice with that id.
func (v *ViewState) Update(ctx context.Context, id models.SliceID, content string, at time.Time) error {
	if models.Blank(content) {
		return ErrEmptyContent
	}
	token, ok := v.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := v.api.Update(ctx, token, id, content, at); err != nil {
		v.logFailure(ctx, "update failed", err)
		return err
	}

	v.mu.Lock()
	idx := v.indexLocked(id)
	v.mu.Unlock()
	if idx < 0 {
		return nil
	}

	v.update(func() {
		// the list may have been replaced while the request was in flight
		if i := v.indexLocked(id); i >= 0 {
			items := slices.Clone(v.items)
			items[i].Content = content
			items[i].Time = models.NewTimestamp(at)
			v.items = items
		}
	})
	return nil
}

// Remove deletes a slice and, once the server agrees, drops the first
// visible slice with that id.
func (v *ViewState) Remove(ctx context.Context, id models.SliceID) error {
	token, ok := v.session.Current()
	if !ok {
		return ErrNotAuthenticated
	}

	if err := v.api.Remove(ctx, token, id); err != nil {
		v.logFailure(ctx, "remove failed", err)
		return err
	}

	v.mu.Lock()
	idx := v.indexLocked(id)
	v.mu.Unlock()
	if idx < 0 {
		return nil
	}

	v.update(func() {
		if i := v.indexLocked(id); i >= 0 {
			v.items = slices.Delete(slices.Clone(v.items), i, i+1)
		}
	})
	return nil
}

// Reset drops everything but the date. Used on logout.
func (v *ViewState) Reset() {
	v.update(func() {
		v.items = []models.Slice{}
		v.searching = false
		v.searchText = ""
		v.loading = false
	})
}

func (v *ViewState) indexLocked(id models.SliceID) int {
	return slices.IndexFunc(v.items, func(s models.Slice) bool { return s.ID == id })
}

func (v *ViewState) logFailure(ctx context.Context, msg string, err error) {
	if code, ok := client.BusinessCode(err); ok {
		v.log.Warn(ctx, msg, "code", code)
		return
	}
	v.log.Warn(ctx, msg, "err", err)
}
