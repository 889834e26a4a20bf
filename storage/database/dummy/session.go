package dummydb

import (
	"context"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/session"
)

type sessionRepository struct {
	db *table[session.Session]
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db.session}
}

func sessionKey(sess session.Session, field string) interface{} {
	switch field {
	case "school_id":
		return sess.SchoolID
	case "supervisor_id":
		return sess.SupervisorID
	case "supervisor_email":
		return sess.SupervisorEmail
	case "client_id":
		return sess.ClientID
	case "client_email":
		return sess.ClientEmail
	case "date":
		return sess.Date
	}
	return sess.ID
}

func (repo *sessionRepository) CreateSession(_ context.Context, sess session.Session) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sess.ID = repo.db.nextID()
	repo.db.rows[sess.ID] = sess
	return sess, nil
}

func (repo *sessionRepository) QuerySessions(_ context.Context, filter session.QueryFilter, ordering ...core.DBOrdering) ([]session.Session, error) {
	if err := checkOrdering(ordering, session.OrderingFields); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	keep := func(sess session.Session) bool {
		if filter.SupervisorEmail != "" && sess.SupervisorEmail != filter.SupervisorEmail {
			return false
		}
		if filter.ClientEmail != "" && sess.ClientEmail != filter.ClientEmail {
			return false
		}
		if filter.SchoolID != 0 && !(sess.SchoolID.Valid && sess.SchoolID.Int64 == filter.SchoolID) {
			return false
		}
		return true
	}
	return repo.db.query(keep, ordering, sessionKey), nil
}

func (repo *sessionRepository) GetSessionByID(_ context.Context, id int64) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.rows[id]; ok {
		return sess, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) UpdateSession(_ context.Context, sess session.Session) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[sess.ID]; !ok {
		return session.Session{}, session.ErrNotFound
	}
	repo.db.rows[sess.ID] = sess
	return sess, nil
}

func (repo *sessionRepository) DeleteSession(_ context.Context, id int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return session.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
