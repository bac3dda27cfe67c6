package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/timemachine/internal/client/models"
)

const deleteQuestion = "Sure to delete?"

// Layouts accepted when the user types a date or a date and time.
const (
	dayInputLayout  = "2006-01-02"
	timeInputLayout = "2006-01-02 15:04"
)

var errBadIndex = errors.New("no such slice")

// List prints the current list right away.
func (a *App) List(ctx context.Context) error {
	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()

	renderSnapshot(a.out, a.view.Snapshot())
	return nil
}

func (a *App) report(what string, err error) error {
	if err != nil {
		a.println(describe(what, err))
	}
	return err
}

func (a *App) Refresh(ctx context.Context) error {
	return a.report("Refresh", a.view.Refresh(ctx))
}

func (a *App) Search(ctx context.Context, text string) error {
	return a.report("Search", a.view.Search(ctx, text))
}

func (a *App) ClearSearch(ctx context.Context) error {
	return a.report("Clear", a.view.ClearSearch(ctx))
}

func (a *App) Prev(ctx context.Context) error {
	return a.report("Load", a.view.ChangeDate(ctx, -1))
}

func (a *App) Next(ctx context.Context) error {
	return a.report("Load", a.view.ChangeDate(ctx, 1))
}

func (a *App) Today(ctx context.Context) error {
	return a.report("Load", a.view.Today(ctx))
}

// GoTo jumps to a day given as YYYY-MM-DD.
func (a *App) GoTo(ctx context.Context, day string) error {
	d, err := time.ParseInLocation(dayInputLayout, day, time.Local)
	if err != nil {
		a.println("Usage: date YYYY-MM-DD")
		return err
	}
	return a.report("Load", a.view.SetDate(ctx, d))
}

// Add asks for the text of a new slice and its time (now by default).
func (a *App) Add(ctx context.Context) error {
	content, err := getMultiline(a.reader, "What's up?", a.out)
	if err != nil {
		return err
	}
	if models.Blank(content) {
		a.println("Nothing to add.")
		return nil
	}

	at, err := a.askTime(a.now())
	if err != nil {
		return err
	}

	return a.report("Add", a.view.Add(ctx, content, at))
}

// Edit changes the text and time of slice n. Empty answers keep the current
// values.
func (a *App) Edit(ctx context.Context, n string) error {
	item, err := a.pick(n)
	if err != nil {
		return err
	}

	a.println("Current text:")
	a.println(item.Content)
	content, err := getMultiline(a.reader, "New text (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if models.Blank(content) {
		content = item.Content
	}

	at, err := a.askTime(item.Time.Time)
	if err != nil {
		return err
	}

	return a.report("Update", a.view.Update(ctx, item.ID, content, at))
}

// Delete removes slice n after asking "Sure to delete?".
func (a *App) Delete(ctx context.Context, n string) error {
	item, err := a.pick(n)
	if err != nil {
		return err
	}

	ok, err := a.Confirm(ctx, deleteQuestion)
	if err != nil || !ok {
		return err
	}

	return a.report("Delete", a.view.Remove(ctx, item.ID))
}

// Copy puts the text of slice n on the system clipboard.
func (a *App) Copy(ctx context.Context, n string) error {
	item, err := a.pick(n)
	if err != nil {
		return err
	}
	if err := clipboardWrite(item.Content); err != nil {
		a.log.Warn(ctx, "clipboard", "err", err)
		return a.report("Copy", err)
	}
	a.println("Copied.")
	return nil
}

// pick resolves a 1-based index typed by the user.
func (a *App) pick(n string) (models.Slice, error) {
	i, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		a.println("Usage: <command> <n>, where n is the number shown in the list")
		return models.Slice{}, errBadIndex
	}
	item, ok := a.view.Item(i - 1)
	if !ok {
		a.println(fmt.Sprintf("No slice %d.", i))
		return models.Slice{}, errBadIndex
	}
	return item, nil
}

// askTime reads "YYYY-MM-DD HH:MM" (or the same with a T). An empty answer
// returns def. Bad input is asked again.
func (a *App) askTime(def time.Time) (time.Time, error) {
	prompt := fmt.Sprintf("Time (YYYY-MM-DD HH:MM, empty for %s)", def.Format(timeInputLayout))
	for {
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return time.Time{}, err
		}
		if s == "" {
			return def, nil
		}
		t, err := parseInputTime(s)
		if err == nil {
			return t, nil
		}
		a.println("Cannot read that time, try again.")
	}
}

func parseInputTime(s string) (time.Time, error) {
	return time.ParseInLocation(timeInputLayout, strings.Replace(strings.TrimSpace(s), "T", " ", 1), time.Local)
}
