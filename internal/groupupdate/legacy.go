package groupupdate

import (
	"fmt"

	"github.com/louisbranch/groupjournal/internal/identity"
)

// RemovedInviteItem is the first element of a generation-2 enumerated list
// when it has the invite-removed shape. Its embedded local-user marker is
// the fallback for records written without the generation-1 flag.
type RemovedInviteItem struct {
	Invitee      identity.Identity
	WasLocalUser bool
}

// LegacyFields is the typed view of a generation-1/2 record's stored
// fields. It exposes only the three lookups the legacy decoder needs; the
// open-ended field maps of the original storage shape stay behind the
// persistence layer.
type LegacyFields struct {
	// LocalUserFlag is the generation-1 "was this known to be the local
	// user" marker. Nil when the field was never written.
	LocalUserFlag *bool
	// RawAddress is the generation-1 single address field in its stored
	// form. Empty when absent.
	RawAddress string
	// FirstItem is the first element of the generation-2 enumerated list
	// when it has the invite-removed shape, nil otherwise.
	FirstItem *RemovedInviteItem
}

// IsEmpty reports whether no legacy fields were stored at all.
func (f LegacyFields) IsEmpty() bool {
	return f.LocalUserFlag == nil && f.RawAddress == "" && f.FirstItem == nil
}

// knownLocalUser resolves the "was this the local user" marker: the
// explicit generation-1 flag wins, then the generation-2 invite-removed
// fallback, then false.
func (f LegacyFields) knownLocalUser() bool {
	if f.LocalUserFlag != nil {
		return *f.LocalUserFlag
	}
	if f.FirstItem != nil {
		return f.FirstItem.WasLocalUser
	}
	return false
}

const stageLegacyDecode = "legacy-decode"

// DecodeLegacy reconstructs an update source from a generation-1/2 record's
// stored fields.
//
// The decoder is pure and total: absent or malformed legacy data degrades
// to the unknown source with a diagnostic rather than an error, because
// historical records must always remain renderable. A pending-kind address
// always resolves to the rejected-invite source, since the era that wrote
// these records had no other way for a pending identifier to author an
// update; the local-user marker only controls the local-user wrap, never
// the identity kind.
func DecodeLegacy(fields LegacyFields) (Source, *Diagnostic) {
	if fields.IsEmpty() {
		return Unknown(), nil
	}

	wasLocalUser := fields.knownLocalUser()

	address, ok := identity.ParseAddress(fields.RawAddress)
	if !ok {
		if fields.RawAddress == "" {
			return Unknown(), nil
		}
		return Unknown(), newDiagnostic(stageLegacyDecode,
			fmt.Sprintf("unresolvable address %q", fields.RawAddress))
	}

	var source Source
	var diag *Diagnostic
	switch address.Kind() {
	case identity.AddressKindAccount:
		account, _ := address.Account()
		source = AccountSource(account)
	case identity.AddressKindPending:
		pending, _ := address.Pending()
		source = RejectedInviteSource(pending)
		if wasLocalUser {
			// The one-case invariant has no reading in which the local user
			// both holds a pending identifier and is marked local; keep the
			// identity kind and note the contradiction.
			diag = newDiagnostic(stageLegacyDecode,
				"pending-identifier record carries a local-user marker")
		}
	case identity.AddressKindPhone:
		phone, _ := address.Phone()
		source = LegacyPhoneSource(phone)
	default:
		return Unknown(), newDiagnostic(stageLegacyDecode,
			fmt.Sprintf("address kind %d is not decodable", address.Kind()))
	}

	if wasLocalUser {
		source = AsLocalUser(source)
	}
	return source, diag
}
