// Package client talks to the Time Machine journal API.
//
// # Overview
//
//  1. Transport: a single request/response exchange. Every call is an HTTP
//     POST with a JSON body; the session token, when present, is merged into
//     the body under "token". The response is a JSON object carrying a
//     numeric "code" (0 means success) and, depending on the endpoint,
//     "token" or "slices".
//  2. Client: the typed API (Login, List, Search, Add, Update, Remove) built
//     on a Transport.
//  3. Local database bootstrap (InitDatabase, RunMigrations) for the SQLite
//     file that keeps the session between runs.
//
// # Error Handling
//
// A failed exchange (network error, timeout, body that is not JSON) is a
// *TransportError and matches ErrUnavailable with errors.Is. A well-formed
// response with a non-zero code is a *BusinessError. Callers treat both as
// "nothing changed".
package client
