// Package models defines the client-side data types: journal slices, their
// identifiers and timestamps, and the day/time formats used on the wire.
package models
