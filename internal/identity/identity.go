// Package identity defines the identifier kinds attached to group
// conversation records.
//
// Three kinds exist, oldest to newest: phone numbers (historical records
// only), pending identifiers (held while a group invitation is
// outstanding), and account identifiers (permanent, assigned once).
// Values are externally supplied and treated as opaque beyond kind
// discrimination.
package identity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AccountID is a permanent account identifier. Assigned once, never reused.
type AccountID string

// PendingID is a provisional identifier held only while a group invitation
// addressed to it is outstanding. It is retired once the invitation is
// accepted or declined.
type PendingID string

// PhoneNumber is a phone-number-shaped identifier used by records written
// before account identifiers existed.
type PhoneNumber string

// pendingPrefix marks a pending identifier in stored address fields.
const pendingPrefix = "pending:"

// AddressKind discriminates the stored form of an address field.
type AddressKind int

const (
	// AddressKindNone indicates an empty or unparseable address.
	AddressKindNone AddressKind = iota
	// AddressKindAccount indicates a permanent account identifier.
	AddressKindAccount
	// AddressKindPending indicates an invite-lifecycle pending identifier.
	AddressKindPending
	// AddressKindPhone indicates a legacy phone-number identifier.
	AddressKindPhone
)

// Address is the union over the three identifier kinds as stored in a
// record's single address field.
type Address struct {
	kind  AddressKind
	value string
}

// ParseAddress discriminates a stored address string into one of the three
// identifier kinds. Pending identifiers carry a "pending:" prefix, phone
// numbers start with "+", anything else non-empty is an account identifier.
// Returns false for an empty or whitespace-only value.
func ParseAddress(raw string) (Address, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Address{}, false
	}
	if rest, ok := strings.CutPrefix(trimmed, pendingPrefix); ok {
		if rest == "" {
			return Address{}, false
		}
		return Address{kind: AddressKindPending, value: rest}, true
	}
	if strings.HasPrefix(trimmed, "+") {
		return Address{kind: AddressKindPhone, value: trimmed}, true
	}
	return Address{kind: AddressKindAccount, value: trimmed}, true
}

// AddressOfAccount builds an account-kind address.
func AddressOfAccount(id AccountID) Address {
	return Address{kind: AddressKindAccount, value: string(id)}
}

// AddressOfPending builds a pending-kind address.
func AddressOfPending(id PendingID) Address {
	return Address{kind: AddressKindPending, value: string(id)}
}

// AddressOfPhone builds a phone-kind address.
func AddressOfPhone(number PhoneNumber) Address {
	return Address{kind: AddressKindPhone, value: string(number)}
}

// Kind returns the discriminated kind of the address.
func (a Address) Kind() AddressKind {
	return a.kind
}

// Account returns the account identifier and true when the address is
// account-kind.
func (a Address) Account() (AccountID, bool) {
	if a.kind != AddressKindAccount {
		return "", false
	}
	return AccountID(a.value), true
}

// Pending returns the pending identifier and true when the address is
// pending-kind.
func (a Address) Pending() (PendingID, bool) {
	if a.kind != AddressKindPending {
		return "", false
	}
	return PendingID(a.value), true
}

// Phone returns the phone identifier and true when the address is
// phone-kind.
func (a Address) Phone() (PhoneNumber, bool) {
	if a.kind != AddressKindPhone {
		return "", false
	}
	return PhoneNumber(a.value), true
}

// String renders the address in its stored form. ParseAddress inverts it.
func (a Address) String() string {
	switch a.kind {
	case AddressKindPending:
		return pendingPrefix + a.value
	case AddressKindAccount, AddressKindPhone:
		return a.value
	default:
		return ""
	}
}

// Identity is the account-or-pending union carried by record payloads that
// reference an invitee. Phone numbers never appear here; only historical
// address fields hold them.
type Identity struct {
	kind  AddressKind
	value string
}

// OfAccount builds an account identity.
func OfAccount(id AccountID) Identity {
	return Identity{kind: AddressKindAccount, value: string(id)}
}

// OfPending builds a pending identity.
func OfPending(id PendingID) Identity {
	return Identity{kind: AddressKindPending, value: string(id)}
}

// IsZero reports whether the identity is unset.
func (i Identity) IsZero() bool {
	return i.kind == AddressKindNone
}

// Account returns the account identifier and true when the identity is an
// account.
func (i Identity) Account() (AccountID, bool) {
	if i.kind != AddressKindAccount {
		return "", false
	}
	return AccountID(i.value), true
}

// Pending returns the pending identifier and true when the identity is
// pending.
func (i Identity) Pending() (PendingID, bool) {
	if i.kind != AddressKindPending {
		return "", false
	}
	return PendingID(i.value), true
}

// Address converts the identity to its stored address form.
func (i Identity) Address() Address {
	return Address{kind: i.kind, value: i.value}
}

type identityJSON struct {
	Account AccountID `json:"account,omitempty"`
	Pending PendingID `json:"pending,omitempty"`
}

// MarshalJSON encodes the identity with an explicit kind key so stored
// payloads stay self-describing.
func (i Identity) MarshalJSON() ([]byte, error) {
	switch i.kind {
	case AddressKindAccount:
		return json.Marshal(identityJSON{Account: AccountID(i.value)})
	case AddressKindPending:
		return json.Marshal(identityJSON{Pending: PendingID(i.value)})
	case AddressKindNone:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("identity kind %d is not encodable", i.kind)
	}
}

// UnmarshalJSON decodes the identity from its kind-keyed form.
func (i *Identity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Identity{}
		return nil
	}
	var decoded identityJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode identity: %w", err)
	}
	switch {
	case decoded.Account != "" && decoded.Pending != "":
		return fmt.Errorf("identity carries both account and pending identifiers")
	case decoded.Account != "":
		*i = OfAccount(decoded.Account)
	case decoded.Pending != "":
		*i = OfPending(decoded.Pending)
	default:
		*i = Identity{}
	}
	return nil
}
