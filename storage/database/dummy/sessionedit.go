package dummydb

import (
	"context"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
)

type sessionEditRepository struct {
	db       *table[sessionedit.SessionEdit]
	sessions *table[session.Session]
}

var _ sessionedit.Repository = (*sessionEditRepository)(nil) // interface compliance check

func NewSessionEditRepository(db *DB) sessionedit.Repository {
	return &sessionEditRepository{db: db.sessionEdit, sessions: db.session}
}

func sessionEditKey(edit sessionedit.SessionEdit, field string) interface{} {
	switch field {
	case "session_id":
		return edit.SessionID
	case "school_id":
		return edit.SchoolID
	case "supervisor_email":
		return edit.SupervisorEmail
	case "client_email":
		return edit.ClientEmail
	case "date":
		return edit.Date
	}
	return edit.ID
}

func (repo *sessionEditRepository) CreateSessionEdit(_ context.Context, edit sessionedit.SessionEdit) (sessionedit.SessionEdit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	edit.ID = repo.db.nextID()
	repo.db.rows[edit.ID] = edit
	return edit, nil
}

func (repo *sessionEditRepository) QuerySessionEdits(
	_ context.Context,
	filter sessionedit.QueryFilter,
	ordering ...core.DBOrdering,
) ([]sessionedit.SessionEdit, error) {
	if err := checkOrdering(ordering, sessionedit.OrderingFields); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	// school of the referenced session, as the sqlx repository's LEFT JOIN
	sessionSchool := func(edit sessionedit.SessionEdit) (int64, bool) {
		if !edit.SessionID.Valid {
			return 0, false
		}
		repo.sessions.RLock()
		defer repo.sessions.RUnlock()
		sess, ok := repo.sessions.rows[edit.SessionID.Int64]
		if !ok || !sess.SchoolID.Valid {
			return 0, false
		}
		return sess.SchoolID.Int64, true
	}

	keep := func(edit sessionedit.SessionEdit) bool {
		if filter.SessionID != 0 && !(edit.SessionID.Valid && edit.SessionID.Int64 == filter.SessionID) {
			return false
		}
		if filter.SupervisorEmail != "" && edit.SupervisorEmail != filter.SupervisorEmail {
			return false
		}
		if filter.ClientEmail != "" && edit.ClientEmail != filter.ClientEmail {
			return false
		}
		if filter.SchoolID != 0 {
			if edit.SchoolID.Valid && edit.SchoolID.Int64 == filter.SchoolID {
				return true
			}
			schoolID, ok := sessionSchool(edit)
			return ok && schoolID == filter.SchoolID
		}
		return true
	}
	return repo.db.query(keep, ordering, sessionEditKey), nil
}

func (repo *sessionEditRepository) GetSessionEditByID(_ context.Context, id int64) (sessionedit.SessionEdit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if edit, ok := repo.db.rows[id]; ok {
		return edit, nil
	}
	return sessionedit.SessionEdit{}, sessionedit.ErrNotFound
}

func (repo *sessionEditRepository) UpdateSessionEdit(_ context.Context, edit sessionedit.SessionEdit) (sessionedit.SessionEdit, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[edit.ID]; !ok {
		return sessionedit.SessionEdit{}, sessionedit.ErrNotFound
	}
	repo.db.rows[edit.ID] = edit
	return edit, nil
}

func (repo *sessionEditRepository) DeleteSessionEdit(_ context.Context, id int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return sessionedit.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
