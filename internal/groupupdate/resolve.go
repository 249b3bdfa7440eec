package groupupdate

import "github.com/louisbranch/groupjournal/internal/identity"

// LocalIdentity is the local device's own identity context, used to detect
// updates the local user authored about themselves.
type LocalIdentity struct {
	Account identity.AccountID
}

// ResolveSource maps one group-update item to the canonical source of the
// state change it records. Resolution is total over the item type set:
// every variant maps to exactly one source shape, and types this build does
// not know resolve to the unknown source.
//
// Where a payload carries two identities the acting party is selected, not
// the affected party: a decline attributed to a known inviter resolves to
// that inviter's account, while the notification projection shows the
// invitee (see NotificationSender). Promotion items short-circuit to the
// direct local-user source when the promoted member is the local account,
// because the promoted member authored their own promotion.
func ResolveSource(item Item, local LocalIdentity) Source {
	switch item.Type {
	case TypeInviteLinkRequestSequence:
		if item.RequestSequence == nil {
			return Unknown()
		}
		return AccountSource(item.RequestSequence.Requester)

	case TypePendingPromotedToFullMember:
		if item.Promotion == nil {
			return Unknown()
		}
		if local.Account != "" && item.Promotion.NewMember == local.Account {
			return LocalUser()
		}
		return AccountSource(item.Promotion.NewMember)

	case TypeLocalUserDeclinedInviteFromInviter,
		TypeLocalUserDeclinedInviteFromUnknownUser:
		return LocalUser()

	case TypeOtherUserDeclinedInviteFromLocalUser,
		TypeOtherUserDeclinedInviteFromUnknownUser:
		if item.Decline == nil {
			return Unknown()
		}
		return identitySource(item.Decline.Invitee)

	case TypeOtherUserDeclinedInviteFromInviter,
		TypeUnnamedUserDeclinedInviteFromInviter:
		if item.Decline == nil {
			return Unknown()
		}
		return AccountSource(item.Decline.Inviter)

	case TypeUnnamedUserDeclinedInviteFromUnknownUser:
		return Unknown()

	case TypeLocalUserInviteRevoked:
		if item.Revocation == nil {
			return Unknown()
		}
		return AccountSource(item.Revocation.Revoker)

	case TypeLocalUserInviteRevokedByUnknownUser,
		TypeUnnamedUserInvitesRevokedByUnknownUser:
		return Unknown()

	case TypeOtherUserInviteRevokedByLocalUser,
		TypeUnnamedUserInvitesRevokedByLocalUser:
		return LocalUser()

	case TypeUnnamedUserInvitesRevokedByOtherUser:
		if item.Revocation == nil {
			return Unknown()
		}
		return AccountSource(item.Revocation.Updater)

	default:
		// TypeUnrecognized and any tag introduced after this build.
		return Unknown()
	}
}

// identitySource maps an account-or-pending identity to its source form. A
// pending invitee can only have authored the one update a pending
// identifier ever authors: declining its own invitation.
func identitySource(id identity.Identity) Source {
	if account, ok := id.Account(); ok {
		return AccountSource(account)
	}
	if pending, ok := id.Pending(); ok {
		return RejectedInviteSource(pending)
	}
	return Unknown()
}
