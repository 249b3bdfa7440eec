package history

import "github.com/louisbranch/groupjournal/internal/groupupdate"

// VisibleInInbox reports whether the record should count toward the inbox
// badge. Changes the local user made are their own echo and stay out of the
// badge path; so do pure profile-change records. Anything whose authorship
// is ambiguous stays visible: hiding is only safe when every resolved
// source is the local user.
func VisibleInInbox(r Record, local groupupdate.LocalIdentity) bool {
	switch r.Generation {
	case GenerationLegacyAddress, GenerationLegacyList:
		source, _ := groupupdate.DecodeLegacy(r.Legacy)
		return !source.IsLocalUser()
	case GenerationTagged:
		items, _ := r.Items()
		if len(items) == 0 {
			// A tagged record with no items is either a pure profile change
			// (never badged) or a non-renderable decode failure (kept
			// visible).
			return r.Profile == nil
		}
		for _, item := range items {
			if !groupupdate.ResolveSource(item, local).IsLocalUser() {
				return true
			}
		}
		return false
	default:
		return true
	}
}
