package models

import (
	"fmt"
	"strings"
)

// Profile carries the computed presentation fields for a user. It is derived
// from the user's name at response time and never persisted.
type Profile struct {
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// ProfileFor derives the demo profile for a user name. The avatar seed is the
// full name, the bio uses the first name.
func ProfileFor(name string) Profile {
	first, _, _ := strings.Cut(name, " ")
	return Profile{
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + name,
		Bio:    fmt.Sprintf("Software Developer bei %s GmbH", first),
	}
}
