package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/user"
	"github.com/trezcool/sessionbook/storage/database"
)

const userColumns = "id, email, password, account_type, school_id"

var userConflicts = map[string]error{"email": user.ErrEmailExists}

type userRepository struct {
	db core.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	id, err := insert(ctx, repo.db, `INSERT INTO users (email, password, account_type, school_id)
		VALUES (:email, :password, :account_type, :school_id)`, usr)
	if err != nil {
		return user.User{}, errors.Wrap(trapUniqueErr(err, userConflicts), "inserting user")
	}
	usr.ID = id
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, ordering ...core.DBOrdering) ([]user.User, error) {
	order, err := orderBy(ordering, user.OrderingFields, "")
	if err != nil {
		return nil, err
	}
	users := make([]user.User, 0)
	if err = repo.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users"+order); err != nil {
		return nil, errors.Wrap(err, "selecting users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int64) (user.User, error) {
	return getUser(ctx, repo.db, "id", id)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return getUser(ctx, repo.db, "email", email)
}

func getUser(ctx context.Context, db core.DBExecutor, column string, value interface{}) (user.User, error) {
	var usr user.User
	q := db.Rebind("SELECT " + userColumns + " FROM users WHERE " + column + " = ?")
	if err := db.GetContext(ctx, &usr, q, value); err != nil {
		return user.User{}, errors.Wrap(trapNoRowsErr(err, user.ErrNotFound), "selecting user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	err := database.InTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		err := update(ctx, tx, `UPDATE users SET email = :email, password = :password, account_type = :account_type,
			school_id = :school_id WHERE id = :id`, usr, user.ErrNotFound)
		if err != nil {
			return trapUniqueErr(err, userConflicts)
		}
		usr, err = getUser(ctx, tx, "id", usr.ID)
		return err
	})
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, repo.db, "users", id, user.ErrNotFound)
}
