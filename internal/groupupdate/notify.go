package groupupdate

import "github.com/louisbranch/groupjournal/internal/identity"

// NotificationSender returns the identity that should visually represent
// the sender of a notification for one group-update item, and false when no
// single identity is appropriate.
//
// This is a separate projection from ResolveSource: the source answers who
// authored the state change, the sender answers whom the user should see as
// the face of the notification. The two diverge for acting-versus-affected
// cases: a decline from a known inviter resolves its source to the inviter,
// but the notification shows the invitee who declined. Items the
// local user authored produce no sender, as do revocations affecting
// multiple unnamed invitees and items this build does not recognize.
func NotificationSender(item Item) (identity.Identity, bool) {
	switch item.Type {
	case TypeInviteLinkRequestSequence:
		if item.RequestSequence == nil || item.RequestSequence.Requester == "" {
			return identity.Identity{}, false
		}
		return identity.OfAccount(item.RequestSequence.Requester), true

	case TypePendingPromotedToFullMember:
		if item.Promotion == nil || item.Promotion.NewMember == "" {
			return identity.Identity{}, false
		}
		return identity.OfAccount(item.Promotion.NewMember), true

	case TypeOtherUserDeclinedInviteFromLocalUser,
		TypeOtherUserDeclinedInviteFromInviter,
		TypeOtherUserDeclinedInviteFromUnknownUser:
		if item.Decline == nil || item.Decline.Invitee.IsZero() {
			return identity.Identity{}, false
		}
		return item.Decline.Invitee, true

	case TypeLocalUserInviteRevoked:
		if item.Revocation == nil || item.Revocation.Revoker == "" {
			return identity.Identity{}, false
		}
		return identity.OfAccount(item.Revocation.Revoker), true

	default:
		// Local-user-authored items, unnamed decliners, revocations that
		// affect multiple unnamed invitees, and unrecognized items have no
		// presentable sender.
		return identity.Identity{}, false
	}
}
