package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vendorportal/internal/service"
)

var timeNow = time.Now

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; rules live in the service and compliance packages.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Get("/document-presets", GetPresets(docSvc))

	vendors := app.Group("/vendors/:vendorID")
	vendors.Get("/documents", GetOverview(docSvc))
	vendors.Get("/documents/missing", GetMissing(docSvc))
	vendors.Get("/documents/report", GetReport(docSvc))
	vendors.Post("/documents/replace", ReplaceDocument(docSvc))
	vendors.Get("/documents/files/:fileName", GetDocumentFile(docSvc))

	vendors.Get("/uploads", ListUploads(docSvc))
	vendors.Get("/uploads/:uploadID/file", DownloadUpload(docSvc))
	vendors.Get("/uploads/:uploadID/preview", PreviewUpload(docSvc))
}
