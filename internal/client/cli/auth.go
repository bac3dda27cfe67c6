package cli

import (
	"context"

	"github.com/dmitrijs2005/timemachine/internal/client/services"
	"github.com/dmitrijs2005/timemachine/internal/common"
)

// Login prompts for a username and password and hands them to the auth
// flow. Leaving both empty cancels. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		a.println(describe("Login failed", err))
		return err
	}

	if a.isLoggedIn() {
		a.println("Welcome, " + username + "!")
	}
	return nil
}

// Logout asks "Sure to logout?" and, on yes, drops the session.
func (a *App) Logout(ctx context.Context) error {
	done, err := a.auth.Logout(ctx, a)
	if err != nil {
		a.log.Warn(ctx, "logout", "err", err)
	}
	if done {
		a.println("Logged out.")
	}
	if a.auth.State() == services.LoggingIn {
		_ = a.Login(ctx)
	}
	return err
}
