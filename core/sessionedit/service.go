package sessionedit

import (
	"context"

	"github.com/trezcool/sessionbook/core"
)

var ErrNotFound = core.NewNotFoundError("Session Edit")

type (
	Repository interface {
		CreateSessionEdit(ctx context.Context, edit SessionEdit) (SessionEdit, error)
		QuerySessionEdits(ctx context.Context, filter QueryFilter, ordering ...core.DBOrdering) ([]SessionEdit, error)
		GetSessionEditByID(ctx context.Context, id int64) (SessionEdit, error)
		// UpdateSessionEdit replaces every column of the SessionEdit with edit.ID.
		UpdateSessionEdit(ctx context.Context, edit SessionEdit) (SessionEdit, error)
		DeleteSessionEdit(ctx context.Context, id int64) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (ne NewSessionEdit) toSessionEdit(id int64) SessionEdit {
	return SessionEdit{
		ID:              id,
		SessionID:       ne.SessionID,
		SchoolID:        ne.SchoolID,
		SupervisorID:    ne.SupervisorID,
		SupervisorEmail: ne.SupervisorEmail,
		ClientID:        ne.ClientID,
		ClientEmail:     ne.ClientEmail,
		Date:            ne.Date,
		Request:         ne.Request,
		AdditionalInfo:  ne.AdditionalInfo,
	}
}

func (svc *Service) Create(ctx context.Context, ne NewSessionEdit) (SessionEdit, error) {
	return svc.repo.CreateSessionEdit(ctx, ne.toSessionEdit(0))
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]SessionEdit, error) {
	return svc.repo.QuerySessionEdits(ctx, QueryFilter{}, ordering...)
}

func (svc *Service) QueryBySession(ctx context.Context, sessionID int64, ordering ...core.DBOrdering) ([]SessionEdit, error) {
	return svc.repo.QuerySessionEdits(ctx, QueryFilter{SessionID: sessionID}, ordering...)
}

func (svc *Service) QueryBySupervisor(ctx context.Context, email string, ordering ...core.DBOrdering) ([]SessionEdit, error) {
	return svc.repo.QuerySessionEdits(ctx, QueryFilter{SupervisorEmail: core.CleanString(email)}, ordering...)
}

func (svc *Service) QueryByClient(ctx context.Context, email string, ordering ...core.DBOrdering) ([]SessionEdit, error) {
	return svc.repo.QuerySessionEdits(ctx, QueryFilter{ClientEmail: core.CleanString(email)}, ordering...)
}

func (svc *Service) QueryBySchool(ctx context.Context, schoolID int64, ordering ...core.DBOrdering) ([]SessionEdit, error) {
	return svc.repo.QuerySessionEdits(ctx, QueryFilter{SchoolID: schoolID}, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (SessionEdit, error) {
	return svc.repo.GetSessionEditByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ne NewSessionEdit) (SessionEdit, error) {
	return svc.repo.UpdateSessionEdit(ctx, ne.toSessionEdit(id))
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteSessionEdit(ctx, id)
}
