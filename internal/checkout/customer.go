package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// Validate reports missing details before a malformed email.
func (c Customer) Validate() error {
	c = c.trimmed()
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return ErrMissingDetails
	}
	if err := validate.Struct(c); err != nil {
		return ErrInvalidEmail.Wrap(err)
	}
	return nil
}

func (c Customer) trimmed() Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// splitName breaks a full name into first and last parts.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
