package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/storage/database"
)

const sessionEditColumns = "e.id, e.session_id, e.school_id, e.supervisor_id, e.supervisor_email, " +
	"e.client_id, e.client_email, e.date, e.request, e.additional_info"

type sessionEditRepository struct {
	db core.DB
}

var _ sessionedit.Repository = (*sessionEditRepository)(nil) // interface compliance check

func NewSessionEditRepository(db core.DB) sessionedit.Repository {
	return &sessionEditRepository{db: db}
}

func (repo *sessionEditRepository) CreateSessionEdit(ctx context.Context, edit sessionedit.SessionEdit) (sessionedit.SessionEdit, error) {
	id, err := insert(ctx, repo.db, `INSERT INTO session_edits
		(session_id, school_id, supervisor_id, supervisor_email, client_id, client_email, date, request, additional_info)
		VALUES (:session_id, :school_id, :supervisor_id, :supervisor_email, :client_id, :client_email, :date, :request, :additional_info)`, edit)
	if err != nil {
		return sessionedit.SessionEdit{}, errors.Wrap(err, "inserting session edit")
	}
	edit.ID = id
	return edit, nil
}

func (repo *sessionEditRepository) QuerySessionEdits(
	ctx context.Context,
	filter sessionedit.QueryFilter,
	ordering ...core.DBOrdering,
) ([]sessionedit.SessionEdit, error) {
	order, err := orderBy(ordering, sessionedit.OrderingFields, "e.")
	if err != nil {
		return nil, err
	}

	from := " FROM session_edits e"
	var (
		conds []string
		args  []interface{}
	)
	if filter.SessionID != 0 {
		conds = append(conds, "e.session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.SupervisorEmail != "" {
		conds = append(conds, "e.supervisor_email = ?")
		args = append(args, filter.SupervisorEmail)
	}
	if filter.ClientEmail != "" {
		conds = append(conds, "e.client_email = ?")
		args = append(args, filter.ClientEmail)
	}
	if filter.SchoolID != 0 {
		from += " LEFT JOIN sessions s ON s.id = e.session_id"
		conds = append(conds, "(e.school_id = ? OR s.school_id = ?)")
		args = append(args, filter.SchoolID, filter.SchoolID)
	}

	edits := make([]sessionedit.SessionEdit, 0)
	q := repo.db.Rebind("SELECT " + sessionEditColumns + from + where(conds) + order)
	if err = repo.db.SelectContext(ctx, &edits, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting session edits")
	}
	return edits, nil
}

func (repo *sessionEditRepository) GetSessionEditByID(ctx context.Context, id int64) (sessionedit.SessionEdit, error) {
	return getSessionEdit(ctx, repo.db, id)
}

func getSessionEdit(ctx context.Context, db core.DBExecutor, id int64) (sessionedit.SessionEdit, error) {
	var edit sessionedit.SessionEdit
	q := db.Rebind("SELECT " + sessionEditColumns + " FROM session_edits e WHERE e.id = ?")
	if err := db.GetContext(ctx, &edit, q, id); err != nil {
		return sessionedit.SessionEdit{}, errors.Wrap(trapNoRowsErr(err, sessionedit.ErrNotFound), "selecting session edit")
	}
	return edit, nil
}

func (repo *sessionEditRepository) UpdateSessionEdit(ctx context.Context, edit sessionedit.SessionEdit) (sessionedit.SessionEdit, error) {
	err := database.InTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		err := update(ctx, tx, `UPDATE session_edits SET session_id = :session_id, school_id = :school_id,
			supervisor_id = :supervisor_id, supervisor_email = :supervisor_email, client_id = :client_id,
			client_email = :client_email, date = :date, request = :request, additional_info = :additional_info
			WHERE id = :id`, edit, sessionedit.ErrNotFound)
		if err != nil {
			return err
		}
		edit, err = getSessionEdit(ctx, tx, edit.ID)
		return err
	})
	if err != nil {
		return sessionedit.SessionEdit{}, errors.Wrap(err, "updating session edit")
	}
	return edit, nil
}

func (repo *sessionEditRepository) DeleteSessionEdit(ctx context.Context, id int64) error {
	return deleteByID(ctx, repo.db, "session_edits", id, sessionedit.ErrNotFound)
}
