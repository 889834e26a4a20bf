package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core/contact"
)

type contactApi struct {
	svc      *contact.Service
	validate *validator.Validate
}

// submissions are immutable: no PUT
func registerContactAPI(g *echo.Group, svc *contact.Service, validate *validator.Validate) {
	api := contactApi{svc: svc, validate: validate}

	cg := g.Group("/contact")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *contactApi) create(ctx echo.Context) error {
	var data contact.NewContact
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewContact")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cont, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating contact")
	}
	return ctx.JSON(http.StatusOK, cont)
}

func (api *contactApi) query(ctx echo.Context) error {
	contacts, err := api.svc.QueryAll(ctx.Request().Context(), bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying contacts")
	}
	return ctx.JSON(http.StatusOK, contacts)
}

func (api *contactApi) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	cont, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding contact by ID")
	}
	return ctx.JSON(http.StatusOK, cont)
}

func (api *contactApi) destroy(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting contact")
	}
	return ctx.JSON(http.StatusOK, deletedResponse("Contact"))
}
