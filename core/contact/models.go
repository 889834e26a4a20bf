package contact

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sessionbook/core"
)

// Contact is an inbound contact-form submission.
type Contact struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Message string `json:"message" db:"message"`
}

type NewContact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (nc *NewContact) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email)
	nc.Message = core.CleanString(nc.Message)
	return validate.Struct(nc)
}

// OrderingFields maps the orderable JSON fields to their columns.
var OrderingFields = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
}
