package history

import (
	"fmt"

	"github.com/louisbranch/groupjournal/internal/identity"
)

// ProfileChange records a conversation member changing their profile name.
// It rides on a history record instead of a group-update item because the
// change is not a group state transition.
type ProfileChange struct {
	// Account is the member whose profile changed.
	Account identity.AccountID `json:"account"`
	OldName string             `json:"old_name,omitempty"`
	NewName string             `json:"new_name,omitempty"`
}

// Summary renders a short untranslated description for logs and the
// inspection CLI. User-facing rendering is the presentation layer's job.
func (c ProfileChange) Summary() string {
	switch {
	case c.OldName != "" && c.NewName != "":
		return fmt.Sprintf("%s changed their name from %q to %q", c.Account, c.OldName, c.NewName)
	case c.NewName != "":
		return fmt.Sprintf("%s set their name to %q", c.Account, c.NewName)
	case c.OldName != "":
		return fmt.Sprintf("%s cleared their name (was %q)", c.Account, c.OldName)
	default:
		return fmt.Sprintf("%s changed their profile", c.Account)
	}
}
