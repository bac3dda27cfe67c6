// Package cli is the interactive terminal front-end of the Time Machine
// client.
//
// It is a thin shell over the services package: it prompts for input,
// forwards commands to the view and auth flow, and prints the slice list
// whenever the view reports a change. No synchronization logic lives here.
//
// Commands
//
//	help                 show available commands
//	login                prompt for credentials
//	logout               forget the session (asks first)
//	l | list             print the current list
//	r | refresh          reload the day or re-run the search
//	search <text>        search all slices; empty text leaves search
//	clear                leave search and show the current day
//	prev | next          move one day back or forward
//	today                jump to today
//	date YYYY-MM-DD      jump to a day
//	add                  write a new slice
//	edit <n>             change slice n
//	delete <n>           delete slice n (asks first)
//	copy <n>             copy slice n to the clipboard
//	exit | quit          leave the program
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
