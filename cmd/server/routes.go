package main

import (
	"net/http"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/metrics"
	"github.com/cinelog/cinelog/pkg/handlers"
	"github.com/cinelog/cinelog/pkg/middleware"
	"github.com/cinelog/cinelog/pkg/routes"
)

func (app *application) routes() http.Handler {
	registry := routes.NewRegistry(app.logger)

	handler := catalog.NewHandler(
		app.catalog,
		app.sink,
		app.logger,
		app.config.Pagination,
		app.config.Storage.MaxUploadSizeBytes(),
	)
	registry.RegisterGroup(handler.Routes())

	registry.Register(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: app.handleHealthCheck,
	})

	registry.Mount("GET /metrics", metrics.Handler())

	uploads := http.FileServer(http.Dir(app.sink.BasePath()))
	registry.Mount("GET /uploads/", http.StripPrefix(catalog.UploadURLPrefix, uploads))

	var h http.Handler = registry.Build()
	h = middleware.CORS(&app.config.CORS)(h)
	h = middleware.Logger(app.logger)(h)
	h = metrics.Middleware()(h)

	return h
}

func (app *application) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		handlers.RespondError(w, app.logger, http.StatusServiceUnavailable, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "available"})
}
