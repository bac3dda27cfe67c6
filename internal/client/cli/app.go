package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/dmitrijs2005/timemachine/internal/client/models"
	"github.com/dmitrijs2005/timemachine/internal/client/services"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// Indirections used to facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
	clipboardWrite  = clipboard.WriteAll
)

// authFlow is the part of services.AuthFlow the App drives.
type authFlow interface {
	Start(ctx context.Context)
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context, c services.Confirmer) (bool, error)
	State() services.AuthState
}

// viewState is the part of services.ViewState the App drives.
type viewState interface {
	OnChange(fn func(services.Snapshot))
	Snapshot() services.Snapshot
	Item(index int) (models.Slice, bool)

	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, query string) error
	ClearSearch(ctx context.Context) error
	ChangeDate(ctx context.Context, offset int) error
	SetDate(ctx context.Context, day time.Time) error
	Today(ctx context.Context) error
	Add(ctx context.Context, content string, at time.Time) error
	Update(ctx context.Context, id models.SliceID, content string, at time.Time) error
	Remove(ctx context.Context, id models.SliceID) error
}

// userSource reports who is logged in.
type userSource interface {
	Username() string
}

type App struct {
	auth   authFlow
	view   viewState
	user   userSource
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu      sync.Mutex
	pending *services.Snapshot
}

func NewApp(auth authFlow, view viewState, user userSource, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		auth:   auth,
		view:   view,
		user:   user,
		log:    log.With("component", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}
	view.OnChange(a.onChange)
	return a
}

func (a *App) onChange(s services.Snapshot) {
	a.mu.Lock()
	a.pending = &s
	a.mu.Unlock()
}

// flush prints the list if the view changed since the last flush.
func (a *App) flush() {
	a.mu.Lock()
	s := a.pending
	a.pending = nil
	a.mu.Unlock()

	if s != nil && a.isLoggedIn() {
		renderSnapshot(a.out, *s)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.State() == services.LoggedIn
}

// Confirm implements services.Confirmer on top of the terminal.
func (a *App) Confirm(_ context.Context, question string) (bool, error) {
	return getConfirmation(a.reader, question, a.out)
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return ""
	}
	s := a.view.Snapshot()
	where := models.DayString(s.Date)
	if s.Searching {
		where = fmt.Sprintf("search %q", s.SearchText)
	}
	if u := a.user.Username(); u != "" {
		return fmt.Sprintf("(%s) %s", u, where)
	}
	return where
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run restores the session, asks for credentials if there is none and then
// serves commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Time Machine (type 'help' for commands)")

	a.auth.Start(ctx)
	if a.auth.State() == services.LoggingIn {
		_ = a.Login(ctx)
	}
	a.flush()

	runREPL(ctx, a, a.status, a.reader, a.out)
}
