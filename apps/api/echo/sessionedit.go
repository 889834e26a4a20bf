package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core/sessionedit"
)

type sessionEditApi struct {
	svc      *sessionedit.Service
	validate *validator.Validate
}

func registerSessionEditAPI(g *echo.Group, svc *sessionedit.Service, validate *validator.Validate) {
	api := sessionEditApi{svc: svc, validate: validate}

	eg := g.Group("/session_edits")
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.GET("/by-supervisor/:email", api.queryBySupervisor)
	eg.GET("/by-client/:email", api.queryByClient)
	eg.GET("/by-school/:school_id", api.queryBySchool)

	// detail endpoints
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *sessionEditApi) create(ctx echo.Context) error {
	var data sessionedit.NewSessionEdit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSessionEdit")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	edit, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session edit")
	}
	return ctx.JSON(http.StatusOK, edit)
}

func (api *sessionEditApi) query(ctx echo.Context) error {
	edits, err := api.svc.QueryAll(ctx.Request().Context(), bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying session edits")
	}
	return ctx.JSON(http.StatusOK, edits)
}

func (api *sessionEditApi) queryBySupervisor(ctx echo.Context) error {
	email, err := bindEmail(ctx, "email")
	if err != nil {
		return err
	}
	edits, err := api.svc.QueryBySupervisor(ctx.Request().Context(), email, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying session edits by supervisor")
	}
	return ctx.JSON(http.StatusOK, edits)
}

func (api *sessionEditApi) queryByClient(ctx echo.Context) error {
	email, err := bindEmail(ctx, "email")
	if err != nil {
		return err
	}
	edits, err := api.svc.QueryByClient(ctx.Request().Context(), email, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying session edits by client")
	}
	return ctx.JSON(http.StatusOK, edits)
}

func (api *sessionEditApi) queryBySchool(ctx echo.Context) error {
	schoolID, err := bindID(ctx, "school_id")
	if err != nil {
		return err
	}
	edits, err := api.svc.QueryBySchool(ctx.Request().Context(), schoolID, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying session edits by school")
	}
	return ctx.JSON(http.StatusOK, edits)
}

func (api *sessionEditApi) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	edit, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding session edit by ID")
	}
	return ctx.JSON(http.StatusOK, edit)
}

func (api *sessionEditApi) update(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	var data sessionedit.NewSessionEdit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSessionEdit")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	edit, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating session edit")
	}
	return ctx.JSON(http.StatusOK, edit)
}

func (api *sessionEditApi) destroy(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting session edit")
	}
	return ctx.JSON(http.StatusOK, deletedResponse("Session Edit"))
}
