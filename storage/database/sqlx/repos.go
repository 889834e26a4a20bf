// Package sqlxrepos implements the core repositories on top of sqlx, for postgres and sqlite.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/storage/database"
)

// trapNoRowsErr maps sql.ErrNoRows to notFound.
func trapNoRowsErr(err, notFound error) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return err
}

// trapUniqueErr maps unique violations to the conflict error registered for the column.
func trapUniqueErr(err error, conflicts map[string]error) error {
	if col, ok := database.UniqueViolation(err); ok {
		if cErr, ok := conflicts[col]; ok {
			return cErr
		}
	}
	return err
}

// insert runs a named INSERT and returns the generated id.
func insert(ctx context.Context, db core.DBExecutor, query string, arg interface{}) (int64, error) {
	q, args, err := db.BindNamed(query+" RETURNING id", arg)
	if err != nil {
		return 0, errors.Wrap(err, "binding insert")
	}
	var id int64
	if err = db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// update runs a named UPDATE and fails with notFound when no row matched.
func update(ctx context.Context, db core.DBExecutor, query string, arg interface{}, notFound error) error {
	q, args, err := db.BindNamed(query, arg)
	if err != nil {
		return errors.Wrap(err, "binding update")
	}
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func deleteByID(ctx context.Context, db core.DBExecutor, table string, id int64, notFound error) error {
	res, err := db.ExecContext(ctx, db.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// orderBy renders the ORDER BY clause, by id when no ordering is requested.
func orderBy(orderings []core.DBOrdering, allowed map[string]string, prefix string) (string, error) {
	if prefix != "" {
		prefixed := make(map[string]string, len(allowed))
		for field, col := range allowed {
			prefixed[field] = prefix + col
		}
		allowed = prefixed
	}
	clause, err := core.OrderBy(orderings, allowed)
	if err != nil {
		return "", err
	}
	if clause == "" {
		return " ORDER BY " + prefix + "id ASC", nil
	}
	return clause, nil
}

// where joins the conditions with AND.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
