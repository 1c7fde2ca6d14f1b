package api

import (
	"net/http"

	"github.com/haven-app/haven/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
) {
	routes.Register(
		mux,
		domain.RuleSets.Handler().Routes(),
		domain.Assessments.Handler().Routes(),
	)
}
