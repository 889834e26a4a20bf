package sessionedit

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
)

// SessionEdit is a change request against a Session. It is a record on its own:
// nothing applies it to the Session it references, which may not even exist.
type SessionEdit struct {
	ID              int64       `json:"id" db:"id"`
	SessionID       null.Int64  `json:"session_id" db:"session_id"`
	SchoolID        null.Int64  `json:"school_id" db:"school_id"`
	SupervisorID    int64       `json:"supervisor_id" db:"supervisor_id"`
	SupervisorEmail string      `json:"supervisor_email" db:"supervisor_email"`
	ClientID        int64       `json:"client_id" db:"client_id"`
	ClientEmail     string      `json:"client_email" db:"client_email"`
	Date            core.Date   `json:"date" db:"date"`
	Request         string      `json:"request" db:"request"`
	AdditionalInfo  null.String `json:"additional_info" db:"additional_info"`
}

// NewSessionEdit contains the information needed to create or replace a SessionEdit.
type NewSessionEdit struct {
	SessionID       null.Int64  `json:"session_id" validate:"omitempty,gt=0"`
	SchoolID        null.Int64  `json:"school_id" validate:"omitempty,gt=0"`
	SupervisorID    int64       `json:"supervisor_id" validate:"required,gt=0"`
	SupervisorEmail string      `json:"supervisor_email" validate:"required"`
	ClientID        int64       `json:"client_id" validate:"required,gt=0"`
	ClientEmail     string      `json:"client_email" validate:"required"`
	Date            core.Date   `json:"date" validate:"required"`
	Request         string      `json:"request" validate:"required"`
	AdditionalInfo  null.String `json:"additional_info"`
}

func (ne *NewSessionEdit) Validate(validate *validator.Validate) error {
	ne.SupervisorEmail = core.CleanString(ne.SupervisorEmail)
	ne.ClientEmail = core.CleanString(ne.ClientEmail)
	ne.Request = core.CleanString(ne.Request)
	return validate.Struct(ne)
}

// QueryFilter applies AND operation on its set fields.
// SchoolID matches the edit's own school or the school of the session it references.
type QueryFilter struct {
	SessionID       int64
	SupervisorEmail string
	ClientEmail     string
	SchoolID        int64
}

// OrderingFields maps the orderable JSON fields to their columns.
var OrderingFields = map[string]string{
	"id":               "id",
	"session_id":       "session_id",
	"school_id":        "school_id",
	"supervisor_email": "supervisor_email",
	"client_email":     "client_email",
	"date":             "date",
}
