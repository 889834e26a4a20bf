package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
	testutil "github.com/trezcool/sessionbook/tests"
)

func TestSchoolRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	acme := testutil.CreateSchool(t, repo, "Acme", "acme.test")
	beta := testutil.CreateSchool(t, repo, "Beta", "beta.test")
	assert.EqualValues(t, 1, acme.ID)
	assert.EqualValues(t, 2, beta.ID)

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetSchoolByID(ctx, acme.ID)
		require.NoError(t, err)
		assert.Equal(t, acme, got)

		_, err = repo.GetSchoolByID(ctx, 42)
		assert.Equal(t, school.ErrNotFound, errors.Cause(err))
	})

	t.Run("unique name and domain", func(t *testing.T) {
		dup := acme
		dup.Domain = "other.test"
		_, err := repo.CreateSchool(ctx, dup)
		assert.Equal(t, school.ErrNameExists, errors.Cause(err))

		dup = acme
		dup.Name = "Other"
		_, err = repo.CreateSchool(ctx, dup)
		assert.Equal(t, school.ErrDomainExists, errors.Cause(err))
	})

	t.Run("query & ordering", func(t *testing.T) {
		schools, err := repo.QuerySchools(ctx)
		require.NoError(t, err)
		assert.Equal(t, []school.School{acme, beta}, schools)

		schools, err = repo.QuerySchools(ctx, core.DBOrdering{Field: "name", Ascending: false})
		require.NoError(t, err)
		assert.Equal(t, []school.School{beta, acme}, schools)

		_, err = repo.QuerySchools(ctx, core.DBOrdering{Field: "phone; DROP TABLE schools", Ascending: true})
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("update", func(t *testing.T) {
		upd := acme
		upd.City = "Elsewhere"
		got, err := repo.UpdateSchool(ctx, upd)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		upd.Domain = beta.Domain
		_, err = repo.UpdateSchool(ctx, upd)
		assert.Equal(t, school.ErrDomainExists, errors.Cause(err))

		upd.ID = 42
		upd.Domain = "ghost.test"
		upd.Name = "Ghost"
		_, err = repo.UpdateSchool(ctx, upd)
		assert.Equal(t, school.ErrNotFound, errors.Cause(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteSchool(ctx, beta.ID))
		assert.Equal(t, school.ErrNotFound, errors.Cause(repo.DeleteSchool(ctx, beta.ID)))

		// the domain is free again
		testutil.CreateSchool(t, repo, "Beta", "beta.test")
	})
}

func TestUserRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	sup := testutil.CreateUser(t, repo, "sup@acme.test", "pwd", user.AccountSupervisor, null.Int64From(1))
	cli := testutil.CreateUser(t, repo, "cli@acme.test", "pwd", user.AccountClient, null.Int64{})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetUserByEmail(ctx, "cli@acme.test")
		require.NoError(t, err)
		assert.Equal(t, cli, got)
		assert.False(t, got.SchoolID.Valid)

		_, err = repo.GetUserByEmail(ctx, "nobody@acme.test")
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
		_, err = repo.GetUserByID(ctx, 42)
		assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	})

	t.Run("unique email", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, user.User{Email: sup.Email, Password: "x", AccountType: user.AccountAdmin})
		assert.Equal(t, user.ErrEmailExists, errors.Cause(err))
	})

	t.Run("update clears school", func(t *testing.T) {
		upd := sup
		upd.SchoolID = null.Int64{}
		got, err := repo.UpdateUser(ctx, upd)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		upd.Email = cli.Email
		_, err = repo.UpdateUser(ctx, upd)
		assert.Equal(t, user.ErrEmailExists, errors.Cause(err))
	})

	t.Run("query & delete", func(t *testing.T) {
		users, err := repo.QueryUsers(ctx, core.DBOrdering{Field: "email", Ascending: true})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, cli.ID, users[0].ID)

		require.NoError(t, repo.DeleteUser(ctx, cli.ID))
		assert.Equal(t, user.ErrNotFound, errors.Cause(repo.DeleteUser(ctx, cli.ID)))
	})
}

func TestSessionRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewSessionRepository(db)
	usrRepo := NewUserRepository(db)
	ctx := context.Background()

	sup := testutil.CreateUser(t, usrRepo, "sup@acme.test", "pwd", user.AccountSupervisor, null.Int64{})
	cli := testutil.CreateUser(t, usrRepo, "cli@acme.test", "pwd", user.AccountClient, null.Int64{})
	other := testutil.CreateUser(t, usrRepo, "other@acme.test", "pwd", user.AccountClient, null.Int64{})

	s1 := testutil.CreateSession(t, repo, null.Int64From(1), sup, cli, core.NewDate(2024, time.May, 2))
	s2 := testutil.CreateSession(t, repo, null.Int64{}, sup, other, core.NewDate(2024, time.May, 1))
	s3 := testutil.CreateSession(t, repo, null.Int64From(1), sup, other, core.NewDate(2023, time.December, 31))

	t.Run("dates round trip", func(t *testing.T) {
		got, err := repo.GetSessionByID(ctx, s3.ID)
		require.NoError(t, err)
		assert.Equal(t, "2023-12-31", got.Date.String())
		assert.Equal(t, s3, got)
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			name     string
			filter   session.QueryFilter
			ordering []core.DBOrdering
			want     []session.Session
		}{
			{name: "all", want: []session.Session{s1, s2, s3}},
			{name: "all by date", ordering: []core.DBOrdering{{Field: "date", Ascending: true}}, want: []session.Session{s3, s2, s1}},
			{name: "supervisor", filter: session.QueryFilter{SupervisorEmail: sup.Email}, want: []session.Session{s1, s2, s3}},
			{name: "client", filter: session.QueryFilter{ClientEmail: other.Email}, want: []session.Session{s2, s3}},
			{name: "school", filter: session.QueryFilter{SchoolID: 1}, want: []session.Session{s1, s3}},
			{name: "client and school", filter: session.QueryFilter{ClientEmail: cli.Email, SchoolID: 1}, want: []session.Session{s1}},
			{name: "none", filter: session.QueryFilter{SupervisorEmail: "nobody@acme.test"}, want: []session.Session{}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.QuerySessions(ctx, tt.filter, tt.ordering...)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("update & delete", func(t *testing.T) {
		upd := s2
		upd.AdditionalInfo = null.StringFrom("room 4")
		upd.Date = core.NewDate(2024, time.June, 1)
		got, err := repo.UpdateSession(ctx, upd)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		upd.ID = 42
		_, err = repo.UpdateSession(ctx, upd)
		assert.Equal(t, session.ErrNotFound, errors.Cause(err))

		require.NoError(t, repo.DeleteSession(ctx, s2.ID))
		_, err = repo.GetSessionByID(ctx, s2.ID)
		assert.Equal(t, session.ErrNotFound, errors.Cause(err))
	})
}

func TestSessionEditRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewSessionEditRepository(db)
	sessRepo := NewSessionRepository(db)
	usrRepo := NewUserRepository(db)
	ctx := context.Background()

	sup := testutil.CreateUser(t, usrRepo, "sup@acme.test", "pwd", user.AccountSupervisor, null.Int64{})
	cli := testutil.CreateUser(t, usrRepo, "cli@acme.test", "pwd", user.AccountClient, null.Int64{})
	acmeSession := testutil.CreateSession(t, sessRepo, null.Int64From(1), sup, cli, core.NewDate(2024, time.May, 1))
	looseSession := testutil.CreateSession(t, sessRepo, null.Int64{}, sup, cli, core.NewDate(2024, time.May, 2))

	// school through the session
	e1 := testutil.CreateSessionEdit(t, repo, acmeSession, core.NewDate(2024, time.May, 8), "move")
	// no school at all
	e2 := testutil.CreateSessionEdit(t, repo, looseSession, core.NewDate(2024, time.May, 9), "move")
	// own school, dangling session
	e3, err := repo.CreateSessionEdit(ctx, sessionedit.SessionEdit{
		SessionID:       null.Int64From(99),
		SchoolID:        null.Int64From(1),
		SupervisorID:    sup.ID,
		SupervisorEmail: sup.Email,
		ClientID:        cli.ID,
		ClientEmail:     cli.Email,
		Date:            core.NewDate(2024, time.May, 7),
		Request:         "cancel",
		AdditionalInfo:  null.StringFrom("sick"),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		filter   sessionedit.QueryFilter
		ordering []core.DBOrdering
		want     []sessionedit.SessionEdit
	}{
		{name: "all", want: []sessionedit.SessionEdit{e1, e2, e3}},
		{name: "session", filter: sessionedit.QueryFilter{SessionID: acmeSession.ID}, want: []sessionedit.SessionEdit{e1}},
		{name: "school (own or joined)", filter: sessionedit.QueryFilter{SchoolID: 1}, want: []sessionedit.SessionEdit{e1, e3}},
		{
			name: "school by date", filter: sessionedit.QueryFilter{SchoolID: 1},
			ordering: []core.DBOrdering{{Field: "date", Ascending: true}}, want: []sessionedit.SessionEdit{e3, e1},
		},
		{name: "other school", filter: sessionedit.QueryFilter{SchoolID: 2}, want: []sessionedit.SessionEdit{}},
		{name: "supervisor and school", filter: sessionedit.QueryFilter{SupervisorEmail: sup.Email, SchoolID: 1}, want: []sessionedit.SessionEdit{e1, e3}},
		{name: "client", filter: sessionedit.QueryFilter{ClientEmail: "nobody@acme.test"}, want: []sessionedit.SessionEdit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QuerySessionEdits(ctx, tt.filter, tt.ordering...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("update & delete", func(t *testing.T) {
		upd := e2
		upd.Request = "move again"
		upd.SessionID = null.Int64{}
		got, err := repo.UpdateSessionEdit(ctx, upd)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		require.NoError(t, repo.DeleteSessionEdit(ctx, e2.ID))
		_, err = repo.GetSessionEditByID(ctx, e2.ID)
		assert.Equal(t, sessionedit.ErrNotFound, errors.Cause(err))
		assert.Equal(t, sessionedit.ErrNotFound, errors.Cause(repo.DeleteSessionEdit(ctx, e2.ID)))
	})
}

func TestContactRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	bob := testutil.CreateContact(t, repo, "Bob", "bob@example.test", "hello")
	ada := testutil.CreateContact(t, repo, "Ada", "ada@example.test", "hi")

	contacts, err := repo.QueryContacts(ctx, core.DBOrdering{Field: "name", Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{ada, bob}, contacts)

	got, err := repo.GetContactByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	require.NoError(t, repo.DeleteContact(ctx, bob.ID))
	_, err = repo.GetContactByID(ctx, bob.ID)
	assert.Equal(t, contact.ErrNotFound, errors.Cause(err))
}
