package school

import (
	"context"

	"github.com/trezcool/sessionbook/core"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("School")
	ErrNameExists   = core.NewConflictError("school", "name")
	ErrDomainExists = core.NewConflictError("school", "domain")
)

type (
	Repository interface {
		CreateSchool(ctx context.Context, sch School) (School, error)
		QuerySchools(ctx context.Context, ordering ...core.DBOrdering) ([]School, error)
		GetSchoolByID(ctx context.Context, id int64) (School, error)
		// UpdateSchool replaces every column of the School with sch.ID.
		UpdateSchool(ctx context.Context, sch School) (School, error)
		DeleteSchool(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (ns NewSchool) toSchool(id int64) School {
	return School{
		ID:       id,
		Name:     ns.Name,
		Address:  ns.Address,
		City:     ns.City,
		County:   ns.County,
		Postcode: ns.Postcode,
		Phone:    ns.Phone.Int64,
		Website:  ns.Website,
		Domain:   ns.Domain,
	}
}

func (svc *Service) Create(ctx context.Context, ns NewSchool) (School, error) {
	return svc.repo.CreateSchool(ctx, ns.toSchool(0))
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]School, error) {
	return svc.repo.QuerySchools(ctx, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (School, error) {
	return svc.repo.GetSchoolByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ns NewSchool) (School, error) {
	return svc.repo.UpdateSchool(ctx, ns.toSchool(id))
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteSchool(ctx, id)
}
