package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/timemachine/internal/client/client"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// AuthState is where the user is in the login lifecycle.
type AuthState int

const (
	LoggedOut AuthState = iota
	LoggingIn
	LoggedIn
)

func (s AuthState) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case LoggingIn:
		return "logging in"
	case LoggedIn:
		return "logged in"
	default:
		return "unknown"
	}
}

const LogoutQuestion = "Sure to logout?"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// AuthFlow drives login and logout. The login prompt is shown while the
// state is LoggingIn.
type AuthFlow struct {
	api     client.Client
	session *Session
	view    *ViewState
	log     logging.Logger

	mu    sync.Mutex
	state AuthState
}

func NewAuthFlow(api client.Client, session *Session, view *ViewState, log logging.Logger) *AuthFlow {
	return &AuthFlow{
		api:     api,
		session: session,
		view:    view,
		log:     log.With("component", "auth"),
		state:   LoggedOut,
	}
}

func (a *AuthFlow) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *AuthFlow) setState(s AuthState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Start restores a saved session. With a token the day's list is loaded;
// without one the flow waits for credentials.
func (a *AuthFlow) Start(ctx context.Context) {
	if _, ok := a.session.Load(ctx); !ok {
		a.setState(LoggingIn)
		return
	}
	a.setState(LoggedIn)
	_ = a.view.Load(ctx)
}

// Login exchanges credentials for a token. Empty username and password
// together mean the prompt was dismissed and nothing is sent. On any failure
// the flow stays in LoggingIn.
func (a *AuthFlow) Login(ctx context.Context, username string, password []byte) error {
	if username == "" && len(password) == 0 {
		return nil
	}

	token, err := a.api.Login(ctx, username, password)
	if err == nil && token == "" {
		err = client.ErrNoToken
	}
	if err != nil {
		if code, ok := client.BusinessCode(err); ok {
			a.log.Warn(ctx, "login rejected", "username", username, "code", code)
		} else {
			a.log.Warn(ctx, "login failed", "username", username, "err", err)
		}
		return err
	}

	if err := a.session.Set(ctx, username, token); err != nil {
		return err
	}

	a.setState(LoggedIn)
	a.log.Info(ctx, "logged in", "username", username)
	_ = a.view.Load(ctx)
	return nil
}

// Logout asks for confirmation, then forgets the session locally. The
// server is not told. It reports whether the user confirmed.
func (a *AuthFlow) Logout(ctx context.Context, c Confirmer) (bool, error) {
	ok, err := c.Confirm(ctx, LogoutQuestion)
	if err != nil || !ok {
		return false, err
	}

	clearErr := a.session.Clear(ctx)
	a.view.Reset()
	a.setState(LoggingIn)
	a.log.Info(ctx, "logged out")
	return true, clearErr
}
