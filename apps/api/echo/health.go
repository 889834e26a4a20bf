package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Build    string `json:"build"`
	Database string `json:"database"`
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

// health reports whether the store answers a ping. It needs no token.
func (s *Server) health(ctx echo.Context) error {
	resp := HealthResponse{Status: "ok", Build: s.deps.Conf.Build, Database: "ok"}
	if s.deps.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.PingContext(pingCtx); err != nil {
			s.deps.Logger.Warn("health: database ping failed", err)
			resp.Status, resp.Database = "unavailable", "unreachable"
			return ctx.JSON(http.StatusServiceUnavailable, resp)
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}
