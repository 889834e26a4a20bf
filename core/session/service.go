package session

import (
	"context"

	"github.com/trezcool/sessionbook/core"
)

var ErrNotFound = core.NewNotFoundError("Session")

type (
	Repository interface {
		CreateSession(ctx context.Context, sess Session) (Session, error)
		QuerySessions(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]Session, error)
		GetSessionByID(ctx context.Context, id int64) (Session, error)
		// UpdateSession replaces every column of the Session with sess.ID.
		UpdateSession(ctx context.Context, sess Session) (Session, error)
		DeleteSession(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (ns NewSession) toSession(id int64) Session {
	return Session{
		ID:              id,
		SchoolID:        ns.SchoolID,
		SupervisorID:    ns.SupervisorID,
		SupervisorEmail: ns.SupervisorEmail,
		ClientID:        ns.ClientID,
		ClientEmail:     ns.ClientEmail,
		Date:            ns.Date,
		AdditionalInfo:  ns.AdditionalInfo,
	}
}

func (svc *Service) Create(ctx context.Context, ns NewSession) (Session, error) {
	return svc.repo.CreateSession(ctx, ns.toSession(0))
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]Session, error) {
	return svc.repo.QuerySessions(ctx, QueryFilter{}, ordering...)
}

func (svc *Service) QueryBySupervisor(ctx context.Context, email string, ordering ...core.DBOrdering) ([]Session, error) {
	return svc.repo.QuerySessions(ctx, QueryFilter{SupervisorEmail: core.CleanString(email)}, ordering...)
}

func (svc *Service) QueryByClient(ctx context.Context, email string, ordering ...core.DBOrdering) ([]Session, error) {
	return svc.repo.QuerySessions(ctx, QueryFilter{ClientEmail: core.CleanString(email)}, ordering...)
}

func (svc *Service) QueryBySchool(ctx context.Context, schoolID int64, ordering ...core.DBOrdering) ([]Session, error) {
	return svc.repo.QuerySessions(ctx, QueryFilter{SchoolID: schoolID}, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ns NewSession) (Session, error) {
	return svc.repo.UpdateSession(ctx, ns.toSession(id))
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteSession(ctx, id)
}
