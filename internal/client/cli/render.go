package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/timemachine/internal/client/client"
	"github.com/dmitrijs2005/timemachine/internal/client/models"
	"github.com/dmitrijs2005/timemachine/internal/client/services"
)

// renderSnapshot prints the header and numbered slices of s.
//
//	== Wed Jan 31 2024 ==
//	 1. first line
//	    second line
//	    01/31/2024 10:00
func renderSnapshot(w io.Writer, s services.Snapshot) {
	if s.Searching {
		fmt.Fprintf(w, "== search: %q ==\n", s.SearchText)
	} else {
		fmt.Fprintf(w, "== %s ==\n", models.DayString(s.Date))
	}

	if len(s.Items) == 0 {
		if s.Loading {
			fmt.Fprintln(w, "Loading...")
		} else {
			fmt.Fprintln(w, "No slices found.")
		}
		return
	}

	for i, item := range s.Items {
		lines := strings.Split(item.Content, "\n")
		fmt.Fprintf(w, "%2d. %s\n", i+1, lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintf(w, "    %s\n", l)
		}
		fmt.Fprintf(w, "    %s\n", item.Time)
	}
}

// describe turns an error from the services into a line for the user.
func describe(what string, err error) string {
	if code, ok := client.BusinessCode(err); ok {
		return fmt.Sprintf("%s: server refused the request (code %d).", what, code)
	}
	switch {
	case errors.Is(err, client.ErrNoToken):
		return what + ": server returned no token."
	case errors.Is(err, client.ErrUnavailable):
		return what + ": server unavailable, try again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return what + ": cancelled."
	case errors.Is(err, services.ErrNotAuthenticated):
		return what + ": please login first."
	case errors.Is(err, services.ErrEmptyContent):
		return what + ": content is empty."
	default:
		return fmt.Sprintf("%s: %v", what, err)
	}
}
