package school

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
)

type School struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Address  string `json:"address" db:"address"`
	City     string `json:"city" db:"city"`
	County   string `json:"county" db:"county"`
	Postcode string `json:"postcode" db:"postcode"`
	Phone    int64  `json:"phone" db:"phone"`
	Website  string `json:"website" db:"website"`
	Domain   string `json:"domain" db:"domain"`
}

// NewSchool contains the information needed to create or replace a School.
type NewSchool struct {
	Name     string     `json:"name" validate:"required"`
	Address  string     `json:"address" validate:"required"`
	City     string     `json:"city" validate:"required"`
	County   string     `json:"county" validate:"required"`
	Postcode string     `json:"postcode" validate:"required"`
	Phone    null.Int64 `json:"phone" validate:"required"`
	Website  string     `json:"website" validate:"required"`
	Domain   string     `json:"domain" validate:"required"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Address = core.CleanString(ns.Address)
	ns.City = core.CleanString(ns.City)
	ns.County = core.CleanString(ns.County)
	ns.Postcode = core.CleanString(ns.Postcode)
	ns.Website = core.CleanString(ns.Website)
	ns.Domain = core.CleanString(ns.Domain)
	return validate.Struct(ns)
}

// OrderingFields maps the orderable JSON fields to their columns.
var OrderingFields = map[string]string{
	"id":       "id",
	"name":     "name",
	"city":     "city",
	"county":   "county",
	"postcode": "postcode",
	"domain":   "domain",
}
