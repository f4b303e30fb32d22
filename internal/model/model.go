package model

import "strings"

// Address is one email address plus its cached validity flag.
//
// Invalid is derived: it is recomputed whenever Email changes and is never
// authoritative on its own.
type Address struct {
	Email   string `json:"email" yaml:"email"`
	Invalid bool   `json:"invalid" yaml:"invalid"`
}

// Comparator orders addresses for display. It returns a negative number when
// a sorts before b, zero when they compare equal, and a positive number
// otherwise.
type Comparator func(a, b Address) int

// Domain returns the part of the address after the last "@", lowercased.
// Addresses without an "@" have an empty domain.
func (a Address) Domain() string {
	i := strings.LastIndex(a.Email, "@")
	if i < 0 {
		return ""
	}
	return strings.ToLower(a.Email[i+1:])
}

// Emails returns the email strings of addrs in order.
func Emails(addrs []Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Email)
	}
	return out
}
