package models

// Assigned is implemented by records that carry a single responsible
// staff member: cases and hearings (judge), inmates (officer).
type Assigned interface {
	AssignedTo() string
}

// HasRole reports whether the actor holds one of the given roles. A nil
// actor or a missing role never passes.
func HasRole(actor *User, roles ...Role) bool {
	if actor == nil || actor.Details.Profile.Role == "" {
		return false
	}
	for _, r := range roles {
		if actor.Details.Profile.Role == r {
			return true
		}
	}
	return false
}

// IsAssignedTo reports whether the actor is the staff member responsible
// for the given record. Unassigned records match nobody.
func IsAssignedTo(actor *User, a Assigned) bool {
	if actor == nil || a == nil {
		return false
	}
	id := a.AssignedTo()
	return id != "" && id == actor.ID.Hex()
}
