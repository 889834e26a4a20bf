package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
	"github.com/trezcool/sessionbook/storage/database"
)

// PrepareDB opens a migrated private in-memory sqlite database, closed at the end of the test.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateSchool(t *testing.T, repo school.Repository, name, domain string) school.School {
	t.Helper()
	sch, err := repo.CreateSchool(context.Background(), school.School{
		Name:     name,
		Address:  "1 Main Street",
		City:     "Leeds",
		County:   "West Yorkshire",
		Postcode: "LS1 1AA",
		Phone:    1130000000,
		Website:  "https://" + domain,
		Domain:   domain,
	})
	if err != nil {
		t.Fatalf("CreateSchool() failed: %v", err)
	}
	return sch
}

func CreateUser(t *testing.T, repo user.Repository, email, pwd, accountType string, schoolID null.Int64) user.User {
	t.Helper()
	usr, err := repo.CreateUser(context.Background(), user.User{
		Email:       email,
		Password:    pwd,
		AccountType: accountType,
		SchoolID:    schoolID,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateSession(t *testing.T, repo session.Repository, schoolID null.Int64, supervisor, client user.User, date core.Date) session.Session {
	t.Helper()
	sess, err := repo.CreateSession(context.Background(), session.Session{
		SchoolID:        schoolID,
		SupervisorID:    supervisor.ID,
		SupervisorEmail: supervisor.Email,
		ClientID:        client.ID,
		ClientEmail:     client.Email,
		Date:            date,
	})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}

// CreateSessionEdit requests a change of sess; the edit has no school of its own.
func CreateSessionEdit(t *testing.T, repo sessionedit.Repository, sess session.Session, date core.Date, request string) sessionedit.SessionEdit {
	t.Helper()
	edit, err := repo.CreateSessionEdit(context.Background(), sessionedit.SessionEdit{
		SessionID:       null.Int64From(sess.ID),
		SupervisorID:    sess.SupervisorID,
		SupervisorEmail: sess.SupervisorEmail,
		ClientID:        sess.ClientID,
		ClientEmail:     sess.ClientEmail,
		Date:            date,
		Request:         request,
	})
	if err != nil {
		t.Fatalf("CreateSessionEdit() failed: %v", err)
	}
	return edit
}

func CreateContact(t *testing.T, repo contact.Repository, name, email, msg string) contact.Contact {
	t.Helper()
	cont, err := repo.CreateContact(context.Background(), contact.Contact{Name: name, Email: email, Message: msg})
	if err != nil {
		t.Fatalf("CreateContact() failed: %v", err)
	}
	return cont
}
