package emails

import (
	"regexp"
	"strings"
)

// defaultPattern accepts a dotted local part (or a quoted one) followed by
// either a bracketed IPv4 literal or a hostname with an alphabetic TLD of at
// least two characters.
var defaultPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// ValidatorFunc reports whether email is invalid.
type ValidatorFunc func(email string) bool

// InvalidSyntax reports whether email fails the default syntax check.
// It has no side effects.
func InvalidSyntax(email string) bool {
	return !defaultPattern.MatchString(email)
}

// Validator decides whether an address is invalid.
//
// A custom func replaces the default check entirely. Only the default check
// emits EventInvalid; custom validators own their notification policy.
type Validator struct {
	custom ValidatorFunc
	emit   func(Event)
}

func NewValidator(custom ValidatorFunc, emit func(Event)) Validator {
	return Validator{custom: custom, emit: emit}
}

// Custom reports whether a caller-supplied func is in use.
func (v Validator) Custom() bool { return v.custom != nil }

func (v Validator) Invalid(email string) bool {
	if v.custom != nil {
		return v.custom(email)
	}
	invalid := InvalidSyntax(email)
	if invalid && v.emit != nil {
		v.emit(Event{Kind: EventInvalid, Email: email})
	}
	return invalid
}

// AllowedDomains returns a ValidatorFunc that treats an address as invalid
// only when it fails the syntax check and does not mention any of domains.
func AllowedDomains(domains ...string) ValidatorFunc {
	return func(email string) bool {
		if !InvalidSyntax(email) {
			return false
		}
		for _, d := range domains {
			if d != "" && strings.Contains(strings.ToLower(email), strings.ToLower(d)) {
				return false
			}
		}
		return true
	}
}
