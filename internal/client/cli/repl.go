package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	flush()

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, text string) error
	ClearSearch(ctx context.Context) error
	Prev(ctx context.Context) error
	Next(ctx context.Context) error
	Today(ctx context.Context) error
	GoTo(ctx context.Context, day string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, n string) error
	Delete(ctx context.Context, n string) error
	Copy(ctx context.Context, n string) error
}

const (
	helpLoggedOut = "Available commands: login, exit"
	helpLoggedIn  = "Available commands: (l)ist, (r)efresh, search <text>, clear, prev, next, today, date YYYY-MM-DD, add, edit <n>, delete <n>, copy <n>, logout, exit"
)

// runREPL reads a line, takes the first word as the command and dispatches
// to a. The rest of the line is the command argument. Until the user is
// logged in only help, login and exit are accepted. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print and
// log their own failures. After every command the list is re-rendered if the
// view changed. Prompts and messages go to w.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(w, args...) }

	for {
		printlnFn(fmt.Sprintf("tm %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "login":
			_ = a.Login(ctx)
			a.flush()
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "logout", "l", "list", "r", "refresh", "search", "clear", "prev", "next",
				"today", "date", "add", "edit", "delete", "copy":
				printlnFn("Please login first.")
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "r", "refresh":
			_ = a.Refresh(ctx)
		case "search":
			_ = a.Search(ctx, arg)
		case "clear":
			_ = a.ClearSearch(ctx)
		case "prev":
			_ = a.Prev(ctx)
		case "next":
			_ = a.Next(ctx)
		case "today":
			_ = a.Today(ctx)
		case "date":
			_ = a.GoTo(ctx, arg)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, arg)
		case "delete":
			_ = a.Delete(ctx, arg)
		case "copy":
			_ = a.Copy(ctx, arg)
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}
		a.flush()
	}
}
