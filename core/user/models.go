package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
)

// Account types in use. The tag is open: any non-empty value is accepted.
const (
	AccountSupervisor = "supervisor"
	AccountClient     = "client"
	AccountAdmin      = "admin"
)

type User struct {
	ID          int64      `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"password" db:"password"`
	AccountType string     `json:"account_type" db:"account_type"`
	SchoolID    null.Int64 `json:"school_id" db:"school_id"`
}

// NewUser contains the information needed to create or replace a User.
// Omitting school_id stores null.
type NewUser struct {
	Email       string     `json:"email" validate:"required"`
	Password    string     `json:"password" validate:"required"`
	AccountType string     `json:"account_type" validate:"required"`
	SchoolID    null.Int64 `json:"school_id" validate:"omitempty,gt=0"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email)
	nu.AccountType = core.CleanString(nu.AccountType)
	return validate.Struct(nu)
}

// OrderingFields maps the orderable JSON fields to their columns.
var OrderingFields = map[string]string{
	"id":           "id",
	"email":        "email",
	"account_type": "account_type",
	"school_id":    "school_id",
}
