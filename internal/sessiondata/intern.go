package sessiondata

import "strings"

// Interner is an append-only string store returning one canonical copy
// per distinct value. Canonical strings are stable for the store's
// lifetime, so callers may rely on their identity.
type Interner struct {
	canon map[string]string
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{canon: make(map[string]string, 64)}
}

// GetAndPut returns the stored copy byte-equal to s, storing an owned
// clone first when none exists.
func (in *Interner) GetAndPut(s string) string {
	if c, ok := in.canon[s]; ok {
		return c
	}

	c := strings.Clone(s)
	in.canon[c] = c

	return c
}

// Len returns the number of distinct strings held.
func (in *Interner) Len() int {
	return len(in.canon)
}
