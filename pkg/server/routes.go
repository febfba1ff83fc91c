package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/server/apihandlers"
	"github.com/supercuration/supercon/pkg/web"
)

var log = internal.GetLogger()

const (
	ReadHeaderTimeout = 5 * time.Second
	RouterName        = "supercon"
)

// Create creates a new HTTP server with the given app state
func Create(appState *app.AppState) *http.Server {
	cfg := appState.Config.Server
	router := setupRouter(appState)
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
}

// @title			Supercon REST API
// @version		0.x
// @license.name	Apache 2.0
// @license.url	http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath		/api/v1
// @schemes		http https
func setupRouter(appState *app.AppState) *chi.Mux {
	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(otelchi.Middleware(
		RouterName,
		otelchi.WithChiRoutes(router),
		otelchi.WithRequestMethodInSpanName(true),
	))
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))

	router.NotFound(web.NotFoundHandler())

	router.Get("/config", apihandlers.GetConfigHandler(appState))
	// The inline table editor posts to a fixed path.
	router.Post("/annotation/feedback", apihandlers.FeedbackHandler(appState))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/process", apihandlers.ProcessDocumentHandler(appState))
		r.Route("/documents/{hash}", func(r chi.Router) {
			r.Get("/", apihandlers.GetDocumentHandler(appState))
			r.Get("/pdf", apihandlers.GetPDFHandler(appState))
			r.Get("/regions/{regionId}", apihandlers.GetRegionHandler(appState))
			r.Get("/export/{format}", apihandlers.ExportHandler(appState))
			r.Post("/rows", apihandlers.AddRowHandler(appState))
			r.Delete("/rows/{rowId}", apihandlers.DeleteRowHandler(appState))
		})
	})

	// Web UI
	router.Route("/document/{hash}", func(r chi.Router) {
		r.Get("/", web.DocumentHandler(appState))
		r.Get("/regions/{regionId}", web.RegionDetailHandler(appState))
	})

	return router
}
