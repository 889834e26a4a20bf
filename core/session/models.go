package session

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
)

// Session is a scheduled meeting between a supervisor and a client.
// The emails are copies taken at write time; they are not kept in sync with the users.
type Session struct {
	ID              int64       `json:"id" db:"id"`
	SchoolID        null.Int64  `json:"school_id" db:"school_id"`
	SupervisorID    int64       `json:"supervisor_id" db:"supervisor_id"`
	SupervisorEmail string      `json:"supervisor_email" db:"supervisor_email"`
	ClientID        int64       `json:"client_id" db:"client_id"`
	ClientEmail     string      `json:"client_email" db:"client_email"`
	Date            core.Date   `json:"date" db:"date"`
	AdditionalInfo  null.String `json:"additional_info" db:"additional_info"`
}

// NewSession contains the information needed to create or replace a Session.
type NewSession struct {
	SchoolID        null.Int64  `json:"school_id" validate:"omitempty,gt=0"`
	SupervisorID    int64       `json:"supervisor_id" validate:"required,gt=0"`
	SupervisorEmail string      `json:"supervisor_email" validate:"required"`
	ClientID        int64       `json:"client_id" validate:"required,gt=0"`
	ClientEmail     string      `json:"client_email" validate:"required"`
	Date            core.Date   `json:"date" validate:"required"`
	AdditionalInfo  null.String `json:"additional_info"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.SupervisorEmail = core.CleanString(ns.SupervisorEmail)
	ns.ClientEmail = core.CleanString(ns.ClientEmail)
	return validate.Struct(ns)
}

// QueryFilter applies AND operation on its set fields.
type QueryFilter struct {
	SupervisorEmail string
	ClientEmail     string
	SchoolID        int64
}

// OrderingFields maps the orderable JSON fields to their columns.
var OrderingFields = map[string]string{
	"id":               "id",
	"school_id":        "school_id",
	"supervisor_id":    "supervisor_id",
	"supervisor_email": "supervisor_email",
	"client_id":        "client_id",
	"client_email":     "client_email",
	"date":             "date",
}
