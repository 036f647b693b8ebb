package models

import "strings"

// GuestIDPrefix prefixes identifiers of locally generated guest identities.
const GuestIDPrefix = "guest_"

// Identity is the signed-in user (or a local guest). Only ID is used as a
// storage key; the rest is display data.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// IsGuest reports whether the identity was generated locally.
func (i Identity) IsGuest() bool {
	return strings.HasPrefix(i.ID, GuestIDPrefix)
}

// Label returns the e-mail address, or "Guest" when there is none.
func (i Identity) Label() string {
	if i.Email != "" {
		return i.Email
	}
	return "Guest"
}
