// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/haven-app/haven/internal/config"
	"github.com/haven-app/haven/internal/infrastructure"
	"github.com/haven-app/haven/pkg/middleware"
	"github.com/haven-app/haven/pkg/module"
	"github.com/haven-app/haven/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	if cfg.Rules.Path != "" {
		runtime.Lifecycle.OnStartup(func() {
			if err := domain.RuleSets.Seed(runtime.Lifecycle.Context(), cfg.Rules.Path); err != nil {
				runtime.Logger.Error("rule seeding failed", "path", cfg.Rules.Path, "error", err)
			}
		})
	}

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBody(cfg.API.MaxBodySizeBytes()))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
