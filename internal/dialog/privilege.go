package dialog

// Guard answers whether a chat id may perform privileged operations.
// The set is fixed at construction from configuration; a denied attempt
// is a defined negative outcome, not an error.
type Guard struct {
	admins map[int64]struct{}
}

// NewGuard creates a Guard over the given privileged-user set.
func NewGuard(admins map[int64]struct{}) *Guard {
	set := make(map[int64]struct{}, len(admins))
	for id := range admins {
		set[id] = struct{}{}
	}
	return &Guard{admins: set}
}

// IsAdmin reports whether the chat id is privileged.
func (g *Guard) IsAdmin(chatID int64) bool {
	_, ok := g.admins[chatID]
	return ok
}

// AdminIDs returns the privileged chat ids, for forwarding user
// messages to the admin team.
func (g *Guard) AdminIDs() []int64 {
	ids := make([]int64, 0, len(g.admins))
	for id := range g.admins {
		ids = append(ids, id)
	}
	return ids
}
