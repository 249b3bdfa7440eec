package groupupdate

import (
	"encoding/json"

	"github.com/louisbranch/groupjournal/internal/identity"
)

// ItemType identifies the kind of a group-update item.
//
// The string values are a durable storage contract: records persisted by
// older builds must keep decoding, so a tag is never renamed or reused.
type ItemType string

// Invite link request events.
const (
	// TypeInviteLinkRequestSequence records a run of repeated request/cancel
	// pairs through the group invite link by one requester.
	TypeInviteLinkRequestSequence ItemType = "sequence_of_invite_link_request_and_cancels"
)

// Membership promotion events.
const (
	// TypePendingPromotedToFullMember records an invited pending identifier
	// being promoted to a full member account.
	TypePendingPromotedToFullMember ItemType = "invited_pending_promoted_to_full_member"
)

// Invite decline events.
const (
	// TypeLocalUserDeclinedInviteFromInviter records the local user declining
	// an invite from a known inviter.
	TypeLocalUserDeclinedInviteFromInviter ItemType = "local_user_declined_invite_from_inviter"
	// TypeLocalUserDeclinedInviteFromUnknownUser records the local user
	// declining an invite whose inviter is unknown.
	TypeLocalUserDeclinedInviteFromUnknownUser ItemType = "local_user_declined_invite_from_unknown_user"
	// TypeOtherUserDeclinedInviteFromLocalUser records another user declining
	// an invite the local user sent.
	TypeOtherUserDeclinedInviteFromLocalUser ItemType = "other_user_declined_invite_from_local_user"
	// TypeOtherUserDeclinedInviteFromInviter records another user declining
	// an invite from a known inviter.
	TypeOtherUserDeclinedInviteFromInviter ItemType = "other_user_declined_invite_from_inviter"
	// TypeOtherUserDeclinedInviteFromUnknownUser records another user
	// declining an invite whose inviter is unknown.
	TypeOtherUserDeclinedInviteFromUnknownUser ItemType = "other_user_declined_invite_from_unknown_user"
	// TypeUnnamedUserDeclinedInviteFromInviter records an unnamed user
	// declining an invite from a known inviter.
	TypeUnnamedUserDeclinedInviteFromInviter ItemType = "unnamed_user_declined_invite_from_inviter"
	// TypeUnnamedUserDeclinedInviteFromUnknownUser records an unnamed user
	// declining an invite whose inviter is unknown.
	TypeUnnamedUserDeclinedInviteFromUnknownUser ItemType = "unnamed_user_declined_invite_from_unknown_user"
)

// Invite revocation events.
const (
	// TypeLocalUserInviteRevoked records the local user's invite being
	// revoked by a known revoker.
	TypeLocalUserInviteRevoked ItemType = "local_user_invite_revoked"
	// TypeLocalUserInviteRevokedByUnknownUser records the local user's
	// invite being revoked by an unknown user.
	TypeLocalUserInviteRevokedByUnknownUser ItemType = "local_user_invite_revoked_by_unknown_user"
	// TypeOtherUserInviteRevokedByLocalUser records the local user revoking
	// one named user's invite.
	TypeOtherUserInviteRevokedByLocalUser ItemType = "other_user_invite_revoked_by_local_user"
	// TypeUnnamedUserInvitesRevokedByLocalUser records the local user
	// revoking invites of unnamed users.
	TypeUnnamedUserInvitesRevokedByLocalUser ItemType = "unnamed_user_invites_were_revoked_by_local_user"
	// TypeUnnamedUserInvitesRevokedByOtherUser records a known user revoking
	// invites of unnamed users.
	TypeUnnamedUserInvitesRevokedByOtherUser ItemType = "unnamed_user_invites_were_revoked_by_other_user"
	// TypeUnnamedUserInvitesRevokedByUnknownUser records an unknown user
	// revoking invites of unnamed users.
	TypeUnnamedUserInvitesRevokedByUnknownUser ItemType = "unnamed_user_invites_were_revoked_by_unknown_user"
)

// TypeUnrecognized marks an item whose tag this build does not know.
// It is never written as a wire tag; decoding preserves the raw encoding so
// re-persisting the sequence keeps the future item intact.
const TypeUnrecognized ItemType = "unrecognized"

// RequestSequencePayload carries a run of invite link request/cancel pairs.
type RequestSequencePayload struct {
	Requester identity.AccountID `json:"requester"`
	Count     uint32             `json:"count"`
	// IsTail marks the run as still open at the end of the record.
	IsTail bool `json:"is_tail"`
}

// PromotionPayload carries an invited-pending-to-full-member promotion.
type PromotionPayload struct {
	NewMember           identity.AccountID `json:"new_member"`
	PendingPromotedFrom identity.PendingID `json:"pending_promoted_from"`
}

// DeclinePayload carries an invite decline. Invitee is unset for unnamed
// decliners; Inviter is set only for the from-inviter variants.
type DeclinePayload struct {
	Invitee identity.Identity  `json:"invitee,omitzero"`
	Inviter identity.AccountID `json:"inviter,omitempty"`
}

// RevocationPayload carries an invite revocation. Revoker is set when the
// local user's own invite was revoked by a known user; Updater is set when
// a known user revoked unnamed users' invites; Count is the number of
// revoked invites for the unnamed variants.
type RevocationPayload struct {
	Revoker identity.AccountID `json:"revoker,omitempty"`
	Updater identity.AccountID `json:"updater,omitempty"`
	Count   uint32             `json:"count,omitempty"`
}

// Item is one group-update event in a record's ordered sequence. Items are
// immutable once constructed and persisted append-only with their owning
// record.
//
// Exactly one payload pointer is set, matching Type; the no-payload
// variants leave all of them nil. Raw holds the original encoding of an
// unrecognized item.
type Item struct {
	Type            ItemType
	RequestSequence *RequestSequencePayload
	Promotion       *PromotionPayload
	Decline         *DeclinePayload
	Revocation      *RevocationPayload
	Raw             json.RawMessage
}

// NewInviteLinkRequestSequence builds a request/cancel run item.
func NewInviteLinkRequestSequence(requester identity.AccountID, count uint32, isTail bool) Item {
	return Item{
		Type: TypeInviteLinkRequestSequence,
		RequestSequence: &RequestSequencePayload{
			Requester: requester,
			Count:     count,
			IsTail:    isTail,
		},
	}
}

// NewPendingPromotedToFullMember builds a promotion item.
func NewPendingPromotedToFullMember(newMember identity.AccountID, promotedFrom identity.PendingID) Item {
	return Item{
		Type: TypePendingPromotedToFullMember,
		Promotion: &PromotionPayload{
			NewMember:           newMember,
			PendingPromotedFrom: promotedFrom,
		},
	}
}

// NewLocalUserDeclinedInviteFromInviter builds a local-user decline item.
func NewLocalUserDeclinedInviteFromInviter() Item {
	return Item{Type: TypeLocalUserDeclinedInviteFromInviter}
}

// NewLocalUserDeclinedInviteFromUnknownUser builds a local-user decline item
// with an unknown inviter.
func NewLocalUserDeclinedInviteFromUnknownUser() Item {
	return Item{Type: TypeLocalUserDeclinedInviteFromUnknownUser}
}

// NewOtherUserDeclinedInviteFromLocalUser builds a decline of an invite the
// local user sent.
func NewOtherUserDeclinedInviteFromLocalUser(invitee identity.Identity) Item {
	return Item{
		Type:    TypeOtherUserDeclinedInviteFromLocalUser,
		Decline: &DeclinePayload{Invitee: invitee},
	}
}

// NewOtherUserDeclinedInviteFromInviter builds a decline of an invite from a
// known inviter.
func NewOtherUserDeclinedInviteFromInviter(invitee identity.Identity, inviter identity.AccountID) Item {
	return Item{
		Type:    TypeOtherUserDeclinedInviteFromInviter,
		Decline: &DeclinePayload{Invitee: invitee, Inviter: inviter},
	}
}

// NewOtherUserDeclinedInviteFromUnknownUser builds a decline of an invite
// whose inviter is unknown.
func NewOtherUserDeclinedInviteFromUnknownUser(invitee identity.Identity) Item {
	return Item{
		Type:    TypeOtherUserDeclinedInviteFromUnknownUser,
		Decline: &DeclinePayload{Invitee: invitee},
	}
}

// NewUnnamedUserDeclinedInviteFromInviter builds an unnamed-user decline of
// an invite from a known inviter.
func NewUnnamedUserDeclinedInviteFromInviter(inviter identity.AccountID) Item {
	return Item{
		Type:    TypeUnnamedUserDeclinedInviteFromInviter,
		Decline: &DeclinePayload{Inviter: inviter},
	}
}

// NewUnnamedUserDeclinedInviteFromUnknownUser builds an unnamed-user decline
// with an unknown inviter.
func NewUnnamedUserDeclinedInviteFromUnknownUser() Item {
	return Item{Type: TypeUnnamedUserDeclinedInviteFromUnknownUser}
}

// NewLocalUserInviteRevoked builds a revocation of the local user's invite
// by a known revoker.
func NewLocalUserInviteRevoked(revoker identity.AccountID) Item {
	return Item{
		Type:       TypeLocalUserInviteRevoked,
		Revocation: &RevocationPayload{Revoker: revoker},
	}
}

// NewLocalUserInviteRevokedByUnknownUser builds a revocation of the local
// user's invite by an unknown user.
func NewLocalUserInviteRevokedByUnknownUser() Item {
	return Item{Type: TypeLocalUserInviteRevokedByUnknownUser}
}

// NewOtherUserInviteRevokedByLocalUser builds a revocation of one named
// user's invite by the local user.
func NewOtherUserInviteRevokedByLocalUser() Item {
	return Item{Type: TypeOtherUserInviteRevokedByLocalUser}
}

// NewUnnamedUserInvitesRevokedByLocalUser builds a revocation of unnamed
// users' invites by the local user.
func NewUnnamedUserInvitesRevokedByLocalUser(count uint32) Item {
	return Item{
		Type:       TypeUnnamedUserInvitesRevokedByLocalUser,
		Revocation: &RevocationPayload{Count: count},
	}
}

// NewUnnamedUserInvitesRevokedByOtherUser builds a revocation of unnamed
// users' invites by a known updater.
func NewUnnamedUserInvitesRevokedByOtherUser(updater identity.AccountID, count uint32) Item {
	return Item{
		Type:       TypeUnnamedUserInvitesRevokedByOtherUser,
		Revocation: &RevocationPayload{Updater: updater, Count: count},
	}
}

// NewUnnamedUserInvitesRevokedByUnknownUser builds a revocation of unnamed
// users' invites by an unknown user.
func NewUnnamedUserInvitesRevokedByUnknownUser(count uint32) Item {
	return Item{
		Type:       TypeUnnamedUserInvitesRevokedByUnknownUser,
		Revocation: &RevocationPayload{Count: count},
	}
}

// ItemTypes lists every wire tag the current build writes, in a stable
// order. TypeUnrecognized is decode-only and deliberately absent.
func ItemTypes() []ItemType {
	return []ItemType{
		TypeInviteLinkRequestSequence,
		TypePendingPromotedToFullMember,
		TypeLocalUserDeclinedInviteFromInviter,
		TypeLocalUserDeclinedInviteFromUnknownUser,
		TypeOtherUserDeclinedInviteFromLocalUser,
		TypeOtherUserDeclinedInviteFromInviter,
		TypeOtherUserDeclinedInviteFromUnknownUser,
		TypeUnnamedUserDeclinedInviteFromInviter,
		TypeUnnamedUserDeclinedInviteFromUnknownUser,
		TypeLocalUserInviteRevoked,
		TypeLocalUserInviteRevokedByUnknownUser,
		TypeOtherUserInviteRevokedByLocalUser,
		TypeUnnamedUserInvitesRevokedByLocalUser,
		TypeUnnamedUserInvitesRevokedByOtherUser,
		TypeUnnamedUserInvitesRevokedByUnknownUser,
	}
}

// Mentions collects every account identifier referenced by the items, in
// first-appearance order without duplicates. The record store indexes these
// for mention lookup.
func Mentions(items []Item) []identity.AccountID {
	var out []identity.AccountID
	seen := make(map[identity.AccountID]struct{})
	add := func(id identity.AccountID) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, item := range items {
		switch {
		case item.RequestSequence != nil:
			add(item.RequestSequence.Requester)
		case item.Promotion != nil:
			add(item.Promotion.NewMember)
		case item.Decline != nil:
			if account, ok := item.Decline.Invitee.Account(); ok {
				add(account)
			}
			add(item.Decline.Inviter)
		case item.Revocation != nil:
			add(item.Revocation.Revoker)
			add(item.Revocation.Updater)
		}
	}
	return out
}
