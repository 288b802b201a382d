// Package api exposes the diagnostics HTTP surface: host detection state,
// target-specification resolution, and image variant matching.
package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"

	"github.com/calyx-lang/calyx/internal/cpudb"
	"github.com/calyx-lang/calyx/internal/dispatch"
	"github.com/calyx-lang/calyx/internal/logger"
)

type Server struct {
	db     *cpudb.DB
	engine *dispatch.Engine
	log    logger.Logger
}

func NewServer(db *cpudb.DB, engine *dispatch.Engine, log logger.Logger) *Server {
	return &Server{db: db, engine: engine, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/host", s.handleHost)
	e.POST("/v1/targets/resolve", s.handleResolve)
	e.POST("/v1/images/match", s.handleMatch)
}

func decodeJSON[T any](r io.Reader) (*T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return &v, nil
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": map[string]string{
			"type":    errType,
			"message": msg,
		},
	})
}
