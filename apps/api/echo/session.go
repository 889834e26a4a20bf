package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
)

type sessionApi struct {
	svc      *session.Service
	editSvc  *sessionedit.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, svc *session.Service, editSvc *sessionedit.Service, validate *validator.Validate) {
	api := sessionApi{svc: svc, editSvc: editSvc, validate: validate}

	sg := g.Group("/sessions")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/by-supervisor/:email", api.queryBySupervisor)
	sg.GET("/by-client/:email", api.queryByClient)
	sg.GET("/by-school/:school_id", api.queryBySchool)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/edits", api.queryEdits)
}

// Handlers

func (api *sessionApi) create(ctx echo.Context) error {
	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *sessionApi) query(ctx echo.Context) error {
	sessions, err := api.svc.QueryAll(ctx.Request().Context(), bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) queryBySupervisor(ctx echo.Context) error {
	email, err := bindEmail(ctx, "email")
	if err != nil {
		return err
	}
	sessions, err := api.svc.QueryBySupervisor(ctx.Request().Context(), email, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying sessions by supervisor")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) queryByClient(ctx echo.Context) error {
	email, err := bindEmail(ctx, "email")
	if err != nil {
		return err
	}
	sessions, err := api.svc.QueryByClient(ctx.Request().Context(), email, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying sessions by client")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) queryBySchool(ctx echo.Context) error {
	schoolID, err := bindID(ctx, "school_id")
	if err != nil {
		return err
	}
	sessions, err := api.svc.QueryBySchool(ctx.Request().Context(), schoolID, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying sessions by school")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	sess, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding session by ID")
	}
	return ctx.JSON(http.StatusOK, sess)
}

// queryEdits lists the change requests referencing a session. They are never applied to it.
func (api *sessionApi) queryEdits(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	if _, err = api.svc.GetByID(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "finding session by ID")
	}
	edits, err := api.editSvc.QueryBySession(ctx.Request().Context(), id, bindOrdering(ctx)...)
	if err != nil {
		return errors.Wrap(err, "querying session edits by session")
	}
	return ctx.JSON(http.StatusOK, edits)
}

func (api *sessionApi) update(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	var data session.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating session")
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.JSON(http.StatusOK, deletedResponse("Session"))
}
