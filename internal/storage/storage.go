// Package storage defines the persistence interfaces for conversation
// history records.
package storage

import (
	"context"

	apperrors "github.com/louisbranch/groupjournal/internal/errors"
	"github.com/louisbranch/groupjournal/internal/history"
	"github.com/louisbranch/groupjournal/internal/identity"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// RecordStore persists conversation history records. Records are append
// style: Put never rewrites an existing record's group-update payload, and
// individual records are removed only when their whole conversation is.
type RecordStore interface {
	Put(ctx context.Context, record history.Record) error
	Get(ctx context.Context, id string) (history.Record, error)
	// ListByConversation returns records in id order (ids are ULIDs, so id
	// order is creation order), starting after afterID when set.
	ListByConversation(ctx context.Context, conversationID, afterID string, limit int) ([]history.Record, error)
	// DeleteConversation removes every record of one conversation. This is
	// the retention-cleanup path; it is the only deletion the store offers.
	DeleteConversation(ctx context.Context, conversationID string) error
}

// MentionStore answers which records reference an account.
type MentionStore interface {
	// SearchMentions returns the newest records mentioning the account,
	// most recent first.
	SearchMentions(ctx context.Context, account identity.AccountID, limit int) ([]history.Record, error)
}
