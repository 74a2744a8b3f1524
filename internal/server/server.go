// Package server exposes the generator over HTTP: health, per-table row
// counts, and seeded generation runs.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"seedline/internal/config"
	"seedline/internal/db"
	"seedline/internal/gen"
	"seedline/internal/migrate"
	"seedline/internal/sink"
)

// Config for the HTTP API handler.
type Config struct {
	Workspace string
	Scenario  *config.Config
	BasePath  string
	Auth      AuthConfig
	Log       *zap.Logger
}

type apiErrorBody struct {
	Code    string `json:"code" example:"bad_request"`
	Message string `json:"message" example:"seed must be set"`
}

type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

func newAPIError(status int, code, message string) huma.StatusError {
	if code == "" {
		code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	return &apiError{status: status, Body: apiErrorBody{Code: code, Message: message}}
}

// New returns an HTTP handler exposing the seedline API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg)
	}

	router := chi.NewRouter()
	router.Use(newAuthMiddleware(basePath, cfg.Auth))
	hcfg := huma.DefaultConfig("Seedline API", "0.1.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerStats(group, cfg)
	registerRuns(group, cfg)

	return router, nil
}

type healthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok"`
	}
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*healthOutput, error) {
		out := &healthOutput{}
		out.Body.Status = "ok"
		return out, nil
	})
}

type statsOutput struct {
	Body struct {
		Tables []sink.TableCount `json:"tables"`
	}
}

func registerStats(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Per-table row counts",
	}, func(ctx context.Context, _ *struct{}) (*statsOutput, error) {
		conn, err := db.Open(db.Config{Workspace: cfg.Workspace})
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		defer conn.Close()
		if err := migrate.Migrate(conn); err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		stats, err := sink.Store{DB: conn}.Stats(ctx)
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		out := &statsOutput{}
		out.Body.Tables = stats
		return out, nil
	})
}

type runInput struct {
	Body struct {
		Seed  int64 `json:"seed" example:"42"`
		Reset bool  `json:"reset,omitempty"`
	}
}

type runOutput struct {
	Body struct {
		Seed   int64          `json:"seed"`
		Counts map[string]int `json:"counts"`
	}
}

func registerRuns(api huma.API, cfg Config) {
	huma.Register(api, huma.Operation{
		OperationID: "post-runs",
		Method:      http.MethodPost,
		Path:        "/runs",
		Summary:     "Generate and persist a seeded dataset",
	}, func(ctx context.Context, in *runInput) (*runOutput, error) {
		if in.Body.Reset {
			if err := db.Remove(cfg.Workspace); err != nil {
				return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
			}
		}
		g, err := gen.New(cfg.Scenario, in.Body.Seed, nil, cfg.Log)
		if err != nil {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", err.Error())
		}
		ds, err := g.Run(ctx)
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}

		conn, err := db.Open(db.Config{Workspace: cfg.Workspace})
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		defer conn.Close()
		if err := migrate.Migrate(conn); err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		if err := (sink.Store{DB: conn}).Write(ctx, ds); err != nil {
			return nil, newAPIError(http.StatusConflict, "conflict",
				fmt.Sprintf("persist dataset: %s (run with reset to replace existing data)", err))
		}

		cfg.Log.Info("run persisted", zap.Int64("seed", in.Body.Seed))
		out := &runOutput{}
		out.Body.Seed = in.Body.Seed
		out.Body.Counts = ds.Counts()
		return out, nil
	})
}
