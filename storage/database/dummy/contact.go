package dummydb

import (
	"context"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
)

type contactRepository struct {
	db *table[contact.Contact]
}

var _ contact.Repository = (*contactRepository)(nil) // interface compliance check

func NewContactRepository(db *DB) contact.Repository {
	return &contactRepository{db: db.contact}
}

func contactKey(cont contact.Contact, field string) interface{} {
	switch field {
	case "name":
		return cont.Name
	case "email":
		return cont.Email
	}
	return cont.ID
}

func (repo *contactRepository) CreateContact(_ context.Context, cont contact.Contact) (contact.Contact, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cont.ID = repo.db.nextID()
	repo.db.rows[cont.ID] = cont
	return cont, nil
}

func (repo *contactRepository) QueryContacts(_ context.Context, ordering ...core.DBOrdering) ([]contact.Contact, error) {
	if err := checkOrdering(ordering, contact.OrderingFields); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.query(nil, ordering, contactKey), nil
}

func (repo *contactRepository) GetContactByID(_ context.Context, id int64) (contact.Contact, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cont, ok := repo.db.rows[id]; ok {
		return cont, nil
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (repo *contactRepository) DeleteContact(_ context.Context, id int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return contact.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
