package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
)

const contactColumns = "id, name, email, message"

type contactRepository struct {
	db core.DB
}

var _ contact.Repository = (*contactRepository)(nil) // interface compliance check

func NewContactRepository(db core.DB) contact.Repository {
	return &contactRepository{db: db}
}

func (repo *contactRepository) CreateContact(ctx context.Context, cont contact.Contact) (contact.Contact, error) {
	id, err := insert(ctx, repo.db, `INSERT INTO contacts (name, email, message) VALUES (:name, :email, :message)`, cont)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "inserting contact")
	}
	cont.ID = id
	return cont, nil
}

func (repo *contactRepository) QueryContacts(ctx context.Context, ordering ...core.DBOrdering) ([]contact.Contact, error) {
	order, err := orderBy(ordering, contact.OrderingFields, "")
	if err != nil {
		return nil, err
	}
	contacts := make([]contact.Contact, 0)
	if err = repo.db.SelectContext(ctx, &contacts, "SELECT "+contactColumns+" FROM contacts"+order); err != nil {
		return nil, errors.Wrap(err, "selecting contacts")
	}
	return contacts, nil
}

func (repo *contactRepository) GetContactByID(ctx context.Context, id int64) (contact.Contact, error) {
	var cont contact.Contact
	q := repo.db.Rebind("SELECT " + contactColumns + " FROM contacts WHERE id = ?")
	if err := repo.db.GetContext(ctx, &cont, q, id); err != nil {
		return contact.Contact{}, errors.Wrap(trapNoRowsErr(err, contact.ErrNotFound), "selecting contact")
	}
	return cont, nil
}

func (repo *contactRepository) DeleteContact(ctx context.Context, id int64) error {
	return deleteByID(ctx, repo.db, "contacts", id, contact.ErrNotFound)
}
