package database

import (
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pqUniqueViolation = "23505"

var sqliteUniqueRegex = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)

// UniqueViolation reports the column whose unique constraint err violates, if any.
func UniqueViolation(err error) (column string, ok bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != pqUniqueViolation {
			return "", false
		}
		return constraintColumn(pqErr.Table, pqErr.Constraint), true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// primary code; the extended one (SQLITE_CONSTRAINT_UNIQUE) is only set when enabled on the connection
		if liteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return "", false
		}
		if m := sqliteUniqueRegex.FindStringSubmatch(liteErr.Error()); m != nil {
			return m[2], true
		}
	}
	return "", false
}

// constraintColumn extracts the column from postgres' default "<table>_<column>_key" constraint names.
func constraintColumn(table, constraint string) string {
	col := strings.TrimSuffix(constraint, "_key")
	return strings.TrimPrefix(col, table+"_")
}
