// Package dummydb is an in-memory store implementing the core repositories.
// It backs the "memory://" DATABASE_URL and the API tests.
package dummydb

import (
	"sort"
	"strings"
	"sync"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
)

type (
	DB struct {
		school      *table[school.School]
		user        *table[user.User]
		session     *table[session.Session]
		sessionEdit *table[sessionedit.SessionEdit]
		contact     *table[contact.Contact]
	}

	table[T any] struct {
		sync.RWMutex
		pkCount int64
		rows    map[int64]T
	}
)

func Open() (*DB, error) {
	db := &DB{
		school:      newTable[school.School](),
		user:        newTable[user.User](),
		session:     newTable[session.Session](),
		sessionEdit: newTable[sessionedit.SessionEdit](),
		contact:     newTable[contact.Contact](),
	}
	return db, nil
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// Reset empties every table; ids start over.
func (db *DB) Reset() {
	db.school.reset()
	db.user.reset()
	db.session.reset()
	db.sessionEdit.reset()
	db.contact.reset()
}

func (t *table[T]) reset() {
	t.Lock()
	defer t.Unlock()
	t.pkCount = 0
	t.rows = make(map[int64]T)
}

// nextID must be called with the write lock held.
func (t *table[T]) nextID() int64 {
	t.pkCount++
	return t.pkCount
}

// query returns the rows matching keep (all when nil), sorted. Must be called with a lock held.
func (t *table[T]) query(keep func(T) bool, ordering []core.DBOrdering, key func(T, string) interface{}) []T {
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			rows = append(rows, row)
		}
	}
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "id", Ascending: true}}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(key(rows[i], ord.Field), key(rows[j], ord.Field))
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return rows
}

// checkOrdering rejects fields the sqlx repositories would reject too.
func checkOrdering(ordering []core.DBOrdering, allowed map[string]string) error {
	_, err := core.OrderBy(ordering, allowed)
	return err
}

// compare orders values the way SQL does, nulls first.
func compare(a, b interface{}) int {
	switch x := a.(type) {
	case int64:
		return compareInt(x, b.(int64))
	case string:
		return strings.Compare(x, b.(string))
	case core.Date:
		return x.Compare(b.(core.Date).Time)
	case null.Int64:
		y := b.(null.Int64)
		switch {
		case !x.Valid && !y.Valid:
			return 0
		case !x.Valid:
			return -1
		case !y.Valid:
			return 1
		}
		return compareInt(x.Int64, y.Int64)
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
