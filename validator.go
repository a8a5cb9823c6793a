package folio

import (
	"github.com/alexchen-dev/folio/contact"
)

// formValidator plugs the shared go-playground validator into echo so
// handlers can call c.Validate on bound forms.
type formValidator struct{}

func (formValidator) Validate(i interface{}) error {
	if v, ok := i.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return contact.Validator().Struct(i)
}
