// Package id provides utilities for generating record identifiers.
//
// Identifiers are ULIDs: 26-character, lexicographically sortable by
// creation time, and safe for use in URLs and file paths. Time ordering
// matters here because history records list in id order within a
// conversation.
package id

import "github.com/oklog/ulid/v2"

// New returns a new ULID string.
func New() string {
	return ulid.Make().String()
}
