// Package presence normalizes collaborative-awareness states into
// renderable remote cursors: relative-to-absolute position mapping,
// stable color fallback, visibility capping, and stale pruning
// (spec.md §4.I).
package presence

import (
	"regexp"

	"github.com/google/uuid"
)

// User is the optional identity carried by a remote client's
// awareness state.
type User struct {
	Name  string
	Email string
	Color string
}

// RawCursor is a remote client's cursor expressed in the transport's
// own relative-position representation, not yet resolved against the
// local document state.
type RawCursor struct {
	AnchorRel any
	HeadRel   any
}

// AwarenessState is one entry from `awareness.getStates()` (spec.md
// §4.I).
type AwarenessState struct {
	Cursor *RawCursor
	User   *User
}

// RemoteCursorState is the normalized, renderable form (spec.md §3).
type RemoteCursorState struct {
	ClientID  string
	User      User
	Anchor    int
	Head      int
	UpdatedAt int64 // unix millis
}

// RelativeToAbsolute converts a transport-relative position to an
// absolute document position against the CURRENT state, or false if
// the position can't be resolved (spec.md §4.I).
type RelativeToAbsolute func(rel any) (int, bool)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// defaultPalette is the deterministic fallback color set, indexed by
// clientId hash modulo its length (spec.md §4.I).
var defaultPalette = []string{
	"#F44E3B", "#FE9200", "#FCDC00", "#A4DD00", "#68CCCA",
	"#73D8FF", "#AEA1FF", "#FDA1FF", "#333333", "#808080",
}

// ColorForClient returns a deterministic fallback color for clientId,
// used when a client supplies no color or an invalid one: the
// palette entry at an FNV-1a hash of clientId modulo the palette
// length (spec.md §4.I: "deterministic palette indexed by clientId %
// paletteLen").
func ColorForClient(clientID string) string {
	h := fnv32(clientID)
	return defaultPalette[int(h)%len(defaultPalette)]
}

func fnv32(s string) uint32 {
	const prime = 16777619
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// ValidColor reports whether c matches #RRGGBB.
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// ResolveColor returns u.Color if valid, else a deterministic fallback
// for clientID from ColorForClient.
func ResolveColor(clientID string, u User) string {
	if ValidColor(u.Color) {
		return u.Color
	}
	return ColorForClient(clientID)
}

// SyntheticClientKey mints a fresh random (uuid) key on every call,
// for a client whose supplied id collides with another's in the DOM-reuse
// cache (spec.md §4.I "DOM reuse: caret elements keyed by clientId").
func SyntheticClientKey() string {
	return uuid.NewString()
}
