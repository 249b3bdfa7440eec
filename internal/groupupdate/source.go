// Package groupupdate models versioned group-update records: the tagged
// update items written by the current storage generation, the decoders for
// the two legacy generations, and the projections that answer who authored
// a group state change and whom a notification should display as its
// sender.
package groupupdate

import (
	"fmt"

	"github.com/louisbranch/groupjournal/internal/identity"
)

// SourceKind discriminates the canonical update source.
type SourceKind int

const (
	// SourceUnknown indicates authorship could not be determined.
	SourceUnknown SourceKind = iota
	// SourceLocalUser indicates the local device's own user made the update.
	SourceLocalUser
	// SourceLegacyPhone indicates a phone-number identifier authored the
	// update. Only historical records produce this.
	SourceLegacyPhone
	// SourceAccount indicates an account identifier authored the update.
	SourceAccount
	// SourceRejectedInviteByPending indicates a pending-identifier holder
	// declined an invitation addressed to that identifier. This is the only
	// way a pending identifier authors an update.
	SourceRejectedInviteByPending
)

// Source is the canonical answer to "who authored this group state change".
//
// The local-user case wraps the identity form the update would otherwise
// have carried. Wrap depth is bounded to one: the wrapped form is never
// unknown and never itself local-user, so a flat representation (kind plus
// the original kind) captures the full union. Callers deciding "is this the
// local user" must use IsLocalUser, not the wrapped identity.
type Source struct {
	kind     SourceKind
	original SourceKind // set only for SourceLocalUser; SourceUnknown when direct
	account  identity.AccountID
	pending  identity.PendingID
	phone    identity.PhoneNumber
}

// Unknown returns the undetermined-authorship source.
func Unknown() Source {
	return Source{}
}

// AccountSource returns a source attributed to an account identifier.
func AccountSource(id identity.AccountID) Source {
	return Source{kind: SourceAccount, account: id}
}

// LegacyPhoneSource returns a source attributed to a legacy phone identifier.
func LegacyPhoneSource(number identity.PhoneNumber) Source {
	return Source{kind: SourceLegacyPhone, phone: number}
}

// RejectedInviteSource returns a source attributed to a pending identifier
// whose holder declined their own invitation.
func RejectedInviteSource(id identity.PendingID) Source {
	return Source{kind: SourceRejectedInviteByPending, pending: id}
}

// LocalUser returns a direct local-user source with no wrapped original,
// for updates whose own shape already guarantees local authorship.
func LocalUser() Source {
	return Source{kind: SourceLocalUser}
}

// AsLocalUser wraps an already-resolved source as local-user authorship,
// preserving the original identity form. Wrapping the unknown source or an
// already-wrapped source cannot express anything new, so both degrade to
// the direct local-user source rather than violating the single-wrap
// invariant.
func AsLocalUser(original Source) Source {
	if original.kind == SourceUnknown || original.kind == SourceLocalUser {
		return LocalUser()
	}
	wrapped := original
	wrapped.kind = SourceLocalUser
	wrapped.original = original.kind
	return wrapped
}

// Kind returns the source discriminator.
func (s Source) Kind() SourceKind {
	return s.kind
}

// IsLocalUser reports whether the update was made by the local user.
func (s Source) IsLocalUser() bool {
	return s.kind == SourceLocalUser
}

// Original returns the identity form a local-user source would otherwise
// have had. The second result is false for direct local-user sources and
// for every non-local-user source.
func (s Source) Original() (Source, bool) {
	if s.kind != SourceLocalUser || s.original == SourceUnknown {
		return Source{}, false
	}
	unwrapped := s
	unwrapped.kind = s.original
	unwrapped.original = SourceUnknown
	return unwrapped, true
}

// Account returns the account identifier and true for account sources.
func (s Source) Account() (identity.AccountID, bool) {
	if s.kind != SourceAccount {
		return "", false
	}
	return s.account, true
}

// Pending returns the pending identifier and true for rejected-invite
// sources.
func (s Source) Pending() (identity.PendingID, bool) {
	if s.kind != SourceRejectedInviteByPending {
		return "", false
	}
	return s.pending, true
}

// Phone returns the phone identifier and true for legacy phone sources.
func (s Source) Phone() (identity.PhoneNumber, bool) {
	if s.kind != SourceLegacyPhone {
		return "", false
	}
	return s.phone, true
}

// String renders the source for logs and the inspection CLI.
func (s Source) String() string {
	switch s.kind {
	case SourceUnknown:
		return "unknown"
	case SourceLocalUser:
		if original, ok := s.Original(); ok {
			return fmt.Sprintf("local-user(%s)", original)
		}
		return "local-user"
	case SourceLegacyPhone:
		return fmt.Sprintf("legacy-phone(%s)", s.phone)
	case SourceAccount:
		return fmt.Sprintf("account(%s)", s.account)
	case SourceRejectedInviteByPending:
		return fmt.Sprintf("rejected-invite(%s)", s.pending)
	default:
		return fmt.Sprintf("source(%d)", int(s.kind))
	}
}
