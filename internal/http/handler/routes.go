package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"datasetregistry/internal/service"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the service; business rules live below.
func RegisterRoutes(app *fiber.App, store Pinger, svc service.RegistryService, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	app.Post("/registries", InitializeRegistry(svc))
	app.Get("/registries/:owner", GetRegistry(svc))

	app.Post("/reputations", RegisterContributor(svc))
	app.Get("/reputations/:contributor", GetReputation(svc))

	app.Post("/datasets", CreateDataset(svc))
	app.Get("/datasets", ListDatasets(svc))
	app.Get("/datasets/:id", GetDataset(svc))
	app.Post("/datasets/:id/downloads", RecordDownload(svc))
	app.Post("/datasets/:id/deactivate", DeactivateDataset(svc))

	app.Post("/artifacts", UploadArtifact(svc))
}

// HealthCheck checks record store connectivity only.
//
// @Summary  Readiness check
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorPayload
// @Router   /health [get]
func HealthCheck(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
