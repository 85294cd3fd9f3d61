// Package server exposes the eligibility engine over HTTP. The API is
// stateless: every request carries a full application state and gets a
// fresh verdict back.
package server

import (
	"log"

	"github.com/valyala/fasthttp"

	"github.com/ch8101040/tashmash/internal/config"
	"github.com/ch8101040/tashmash/internal/domain"
)

// Server routes API requests to the engine.
type Server struct {
	rules *domain.RuleSet
	cfg   config.ServerConfig
}

// New builds a server around one immutable rule set.
func New(rules *domain.RuleSet, cfg config.ServerConfig) *Server {
	return &Server{rules: rules, cfg: cfg}
}

// ListenAndServe blocks serving the API on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &fasthttp.Server{
		Handler:      s.route,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		Name:         "tashmash",
	}
	log.Printf("server: listening on %s", s.cfg.Addr)
	return srv.ListenAndServe(s.cfg.Addr)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch {
	case path == "/v1/calculations" && ctx.IsPost():
		s.handleCalculation(ctx)
	case path == "/v1/calculations/interim" && ctx.IsPost():
		s.handleInterim(ctx)
	case path == "/v1/validations" && ctx.IsPost():
		s.handleValidation(ctx)
	case path == "/v1/categories" && ctx.IsGet():
		s.handleCategories(ctx)
	case path == "/healthz" && ctx.IsGet():
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "unknown route")
	}
}
