// Package services holds the client-side state of the journal: the
// persisted session, the view (date cursor, search mode, visible slices)
// and the login/logout flow that ties them together.
//
// None of the services retry or sequence requests. A failed call leaves the
// visible list untouched (apart from a Load or Search, which clears it
// before asking the server) and is reported to the caller and the log.
package services
