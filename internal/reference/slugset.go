package reference

// SlugSet answers membership questions for exception lists.
type SlugSet interface {
	Contains(slug string) bool
}

// Set is a SlugSet backed by a map.
type Set map[string]struct{}

// NewSet builds a Set from the given slugs.
func NewSet(slugs ...string) Set {
	s := make(Set, len(slugs))
	for _, slug := range slugs {
		s[slug] = struct{}{}
	}
	return s
}

// Contains reports whether slug is a member.
func (s Set) Contains(slug string) bool {
	_, ok := s[slug]
	return ok
}
