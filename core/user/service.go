package user

import (
	"context"

	"github.com/trezcool/sessionbook/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("User")
	ErrEmailExists = core.NewConflictError("user", "email")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryUsers(ctx context.Context, ordering ...core.DBOrdering) ([]User, error)
		GetUserByID(ctx context.Context, id int64) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// UpdateUser replaces every column of the User with usr.ID.
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (nu NewUser) toUser(id int64) User {
	return User{
		ID:          id,
		Email:       nu.Email,
		Password:    nu.Password,
		AccountType: nu.AccountType,
		SchoolID:    nu.SchoolID,
	}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	return svc.repo.CreateUser(ctx, nu.toUser(0))
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]User, error) {
	return svc.repo.QueryUsers(ctx, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email))
}

func (svc *Service) Update(ctx context.Context, id int64, nu NewUser) (User, error) {
	return svc.repo.UpdateUser(ctx, nu.toUser(id))
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteUser(ctx, id)
}
