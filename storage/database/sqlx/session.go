package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/storage/database"
)

const sessionColumns = "id, school_id, supervisor_id, supervisor_email, client_id, client_email, date, additional_info"

type sessionRepository struct {
	db core.DB
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db core.DB) session.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, sess session.Session) (session.Session, error) {
	id, err := insert(ctx, repo.db, `INSERT INTO sessions
		(school_id, supervisor_id, supervisor_email, client_id, client_email, date, additional_info)
		VALUES (:school_id, :supervisor_id, :supervisor_email, :client_id, :client_email, :date, :additional_info)`, sess)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "inserting session")
	}
	sess.ID = id
	return sess, nil
}

func (repo *sessionRepository) QuerySessions(ctx context.Context, filter session.QueryFilter, ordering ...core.DBOrdering) ([]session.Session, error) {
	order, err := orderBy(ordering, session.OrderingFields, "")
	if err != nil {
		return nil, err
	}

	var (
		conds []string
		args  []interface{}
	)
	if filter.SupervisorEmail != "" {
		conds = append(conds, "supervisor_email = ?")
		args = append(args, filter.SupervisorEmail)
	}
	if filter.ClientEmail != "" {
		conds = append(conds, "client_email = ?")
		args = append(args, filter.ClientEmail)
	}
	if filter.SchoolID != 0 {
		conds = append(conds, "school_id = ?")
		args = append(args, filter.SchoolID)
	}

	sessions := make([]session.Session, 0)
	q := repo.db.Rebind("SELECT " + sessionColumns + " FROM sessions" + where(conds) + order)
	if err = repo.db.SelectContext(ctx, &sessions, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting sessions")
	}
	return sessions, nil
}

func (repo *sessionRepository) GetSessionByID(ctx context.Context, id int64) (session.Session, error) {
	return getSession(ctx, repo.db, id)
}

func getSession(ctx context.Context, db core.DBExecutor, id int64) (session.Session, error) {
	var sess session.Session
	q := db.Rebind("SELECT " + sessionColumns + " FROM sessions WHERE id = ?")
	if err := db.GetContext(ctx, &sess, q, id); err != nil {
		return session.Session{}, errors.Wrap(trapNoRowsErr(err, session.ErrNotFound), "selecting session")
	}
	return sess, nil
}

func (repo *sessionRepository) UpdateSession(ctx context.Context, sess session.Session) (session.Session, error) {
	err := database.InTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		err := update(ctx, tx, `UPDATE sessions SET school_id = :school_id, supervisor_id = :supervisor_id,
			supervisor_email = :supervisor_email, client_id = :client_id, client_email = :client_email,
			date = :date, additional_info = :additional_info WHERE id = :id`, sess, session.ErrNotFound)
		if err != nil {
			return err
		}
		sess, err = getSession(ctx, tx, sess.ID)
		return err
	})
	if err != nil {
		return session.Session{}, errors.Wrap(err, "updating session")
	}
	return sess, nil
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, id int64) error {
	return deleteByID(ctx, repo.db, "sessions", id, session.ErrNotFound)
}
