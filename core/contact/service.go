package contact

import (
	"context"
	"net/mail"

	"github.com/trezcool/sessionbook/core"
)

const receivedTemplate = "contact_received"

var ErrNotFound = core.NewNotFoundError("Contact")

type (
	Repository interface {
		CreateContact(ctx context.Context, cont Contact) (Contact, error)
		QueryContacts(ctx context.Context, ordering ...core.DBOrdering) ([]Contact, error)
		GetContactByID(ctx context.Context, id int64) (Contact, error)
		DeleteContact(ctx context.Context, id int64) error
	}

	Service struct {
		repo       Repository
		mailSvc    core.EmailService
		recipients []mail.Address
	}
)

// NewService returns a contact Service notifying recipients of every submission.
// No mail is sent when recipients is empty.
func NewService(repo Repository, mailSvc core.EmailService, recipients []mail.Address) *Service {
	return &Service{
		repo:       repo,
		mailSvc:    mailSvc,
		recipients: recipients,
	}
}

func (svc *Service) Create(ctx context.Context, nc NewContact) (Contact, error) {
	cont, err := svc.repo.CreateContact(ctx, Contact{
		Name:    nc.Name,
		Email:   nc.Email,
		Message: nc.Message,
	})
	if err != nil {
		return Contact{}, err
	}
	svc.notify(cont)
	return cont, nil
}

func (svc *Service) notify(cont Contact) {
	if svc.mailSvc == nil || len(svc.recipients) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.recipients,
		Subject:      "New contact form submission from " + cont.Name,
		TemplateName: receivedTemplate,
		TemplateData: cont,
	})
}

func (svc *Service) QueryAll(ctx context.Context, ordering ...core.DBOrdering) ([]Contact, error) {
	return svc.repo.QueryContacts(ctx, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Contact, error) {
	return svc.repo.GetContactByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteContact(ctx, id)
}
