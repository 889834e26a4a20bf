package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, pwd, accountType string, schoolID int64) error {
	ctx := context.Background()
	nu := user.NewUser{
		Email:       email,
		Password:    pwd,
		AccountType: accountType,
	}
	if schoolID != 0 {
		nu.SchoolID = null.Int64From(schoolID)
	}
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, nu.Email)
	switch {
	case errors.Cause(err) == user.ErrNotFound:
		usr, err = cli.usrSvc.Create(ctx, nu)
	case err == nil:
		usr, err = cli.usrSvc.Update(ctx, usr.ID, nu)
	}
	if err != nil {
		return err
	}
	fmt.Printf("user %d (%s) saved\n", usr.ID, usr.Email)
	return nil
}

func (cli *commandLine) addSchool(ns school.NewSchool) error {
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}
	sch, err := cli.schSvc.Create(context.Background(), ns)
	if err != nil {
		return err
	}
	fmt.Printf("school %d (%s) saved\n", sch.ID, sch.Domain)
	return nil
}
