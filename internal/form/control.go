// Package form is a small reactive form model for hosting the address
// widget: controls with validators and an array of controls that pushes its
// value to subscribers on every change.
package form

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrRequired = errors.New("required")
	ErrEmail    = errors.New("invalid email")
)

// ValidatorFn returns a non-nil error when value is invalid.
type ValidatorFn func(value string) error

// emailPattern follows the HTML living standard's valid-email-address rule.
var emailPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*)@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Email accepts empty values; pair it with Required to reject them.
func Email(value string) error {
	if value == "" || emailPattern.MatchString(value) {
		return nil
	}
	return ErrEmail
}

func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	return nil
}

// Control holds one string value and the result of its validators.
type Control struct {
	value      string
	validators []ValidatorFn
	errs       []error
}

func NewControl(value string, validators ...ValidatorFn) *Control {
	c := &Control{validators: validators}
	c.SetValue(value)
	return c
}

func (c *Control) Value() string { return c.value }

// SetValue stores v and reruns every validator.
func (c *Control) SetValue(v string) {
	c.value = v
	c.errs = c.errs[:0]
	for _, fn := range c.validators {
		if err := fn(v); err != nil {
			c.errs = append(c.errs, err)
		}
	}
}

func (c *Control) Invalid() bool { return len(c.errs) > 0 }

// Err joins the validation errors, or returns nil.
func (c *Control) Err() error { return errors.Join(c.errs...) }
