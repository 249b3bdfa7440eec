// Package history models conversation-history records for group state
// changes across the three on-disk generations, oldest to current: a raw
// single-address field, an enumerated item list without a source, and the
// current self-describing tagged item sequence.
package history

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/groupjournal/internal/errors"
	"github.com/louisbranch/groupjournal/internal/groupupdate"
	"github.com/louisbranch/groupjournal/internal/identity"
)

// Generation identifies which on-disk encoding produced a record.
type Generation int

const (
	// GenerationLegacyAddress is the oldest encoding: one raw address field
	// plus an optional "was local user" flag.
	GenerationLegacyAddress Generation = 1
	// GenerationLegacyList is the enumerated-without-source encoding; only
	// its first invite-removed element carries a local-user marker.
	GenerationLegacyList Generation = 2
	// GenerationTagged is the current self-describing tagged item sequence.
	GenerationTagged Generation = 3
)

// IsValid reports whether the generation is one of the three known
// encodings.
func (g Generation) IsValid() bool {
	return g >= GenerationLegacyAddress && g <= GenerationTagged
}

// Record is one conversation-history entry recording group state changes.
// Records are immutable once written: the item sequence is persisted
// verbatim and read back only for rendering and source resolution. Only
// the whole record is ever removed, by retention cleanup outside this
// package.
type Record struct {
	// ID is the record's ULID.
	ID string
	// ConversationID identifies the owning group conversation.
	ConversationID string
	// CreatedAt is when the group change was observed.
	CreatedAt time.Time
	// Generation names the encoding the stored fields use.
	Generation Generation
	// Legacy holds the generation-1/2 stored fields. Zero for generation 3.
	Legacy groupupdate.LegacyFields
	// ItemsBlob is the generation-3 encoded item sequence. Nil for legacy
	// generations.
	ItemsBlob []byte
	// Profile holds a profile-change payload for records that log a member
	// renaming themselves rather than a group change.
	Profile *ProfileChange
}

// Validate checks the fields a record needs before it can be persisted.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return apperrors.New(apperrors.CodeRecordEmptyID, "record id is required")
	}
	if strings.TrimSpace(r.ConversationID) == "" {
		return apperrors.New(apperrors.CodeRecordEmptyConversationID, "conversation id is required")
	}
	if !r.Generation.IsValid() {
		return apperrors.WithMetadata(apperrors.CodeRecordInvalidGeneration,
			"unknown record generation", map[string]string{"generation": strconv.Itoa(int(r.Generation))})
	}
	return nil
}

// Items returns the decoded generation-3 item sequence. Legacy records have
// no items. The diagnostic reports recoverable decode anomalies; a nil item
// slice with a non-nil diagnostic marks the record non-renderable.
func (r Record) Items() ([]groupupdate.Item, *groupupdate.Diagnostic) {
	if r.Generation != GenerationTagged {
		return nil, nil
	}
	return groupupdate.DecodeItems(r.ItemsBlob)
}

// Source resolves the canonical update source for the record, regardless of
// which generation produced it. Generation-3 records take the source of
// their first item; the items of one record share an author by
// construction. The result is best-effort: absence degrades to the unknown
// source, never an error.
func (r Record) Source(local groupupdate.LocalIdentity) (groupupdate.Source, *groupupdate.Diagnostic) {
	switch r.Generation {
	case GenerationLegacyAddress, GenerationLegacyList:
		return groupupdate.DecodeLegacy(r.Legacy)
	case GenerationTagged:
		items, diag := r.Items()
		if len(items) == 0 {
			return groupupdate.Unknown(), diag
		}
		return groupupdate.ResolveSource(items[0], local), diag
	default:
		return groupupdate.Unknown(), nil
	}
}

// Mentions lists the account identifiers the record references, for the
// store's mention index. Legacy records contribute their address field when
// it resolves to an account.
func (r Record) Mentions() []identity.AccountID {
	switch r.Generation {
	case GenerationTagged:
		items, _ := r.Items()
		return groupupdate.Mentions(items)
	case GenerationLegacyAddress, GenerationLegacyList:
		address, ok := identity.ParseAddress(r.Legacy.RawAddress)
		if !ok {
			return nil
		}
		if account, isAccount := address.Account(); isAccount {
			return []identity.AccountID{account}
		}
	}
	return nil
}
