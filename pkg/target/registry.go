package target

// Registry is the ordered collection of all Targets. Nicknames are unique
// within it (case-sensitive). Order is append order and is preserved by
// the store.
type Registry []Target

// Lookup returns the Target bound to nickname, matching case-sensitively.
func (r Registry) Lookup(nickname string) (Target, bool) {
	for _, t := range r {
		if t.Nickname == nickname {
			return t, true
		}
	}
	return Target{}, false
}

// Contains reports whether nickname is already bound.
func (r Registry) Contains(nickname string) bool {
	_, ok := r.Lookup(nickname)
	return ok
}

// At returns the Target at the 1-based position shown in listings.
func (r Registry) At(index int) (Target, bool) {
	if index < 1 || index > len(r) {
		return Target{}, false
	}
	return r[index-1], true
}

// Without returns a copy of the registry with nickname removed. The
// nickname is the sole removal key.
func (r Registry) Without(nickname string) Registry {
	out := make(Registry, 0, len(r))
	for _, t := range r {
		if t.Nickname == nickname {
			continue
		}
		out = append(out, t)
	}
	return out
}
