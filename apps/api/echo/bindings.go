package echoapi

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/sessionbook/core"
)

var orderingParam = "ordering"

// Ordering binds `?ordering=field,-field` ("-" for descending).
type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

func bindOrdering(ctx echo.Context) []core.DBOrdering {
	ordering := new(Ordering)
	ordering.Bind(ctx)
	return ordering.Orderings
}

// bindID reads a positive integer path param.
func bindID(ctx echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(ctx).MustInt64(name, &id).BindError(); err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bindEmail reads an email path param, percent-decoded when the client escaped it.
func bindEmail(ctx echo.Context, name string) (string, error) {
	email, err := url.PathUnescape(ctx.Param(name))
	if err != nil {
		return "", errInvalidEmail
	}
	return email, nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

func deletedResponse(resource string) MessageResponse {
	return MessageResponse{Message: resource + " deleted"}
}
