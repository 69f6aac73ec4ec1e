package handler

import (
	"github.com/gofiber/fiber/v2"

	"datasetregistry/internal/service"
)

type initializeRegistryRequest struct {
	Admin string `json:"admin"`
}

type registerContributorRequest struct {
	Contributor string `json:"contributor"`
}

// InitializeRegistry creates the empty registry of an administrator.
//
// @Summary  Initialize a registry
// @Tags     registries
// @Accept   json
// @Produce  json
// @Param    body body initializeRegistryRequest true "registry administrator"
// @Success  201 {object} model.Registry
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /registries [post]
func InitializeRegistry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req initializeRegistryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		reg, err := svc.Initialize(c.UserContext(), req.Admin)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(reg)
	}
}

// GetRegistry returns a registry by its owner.
//
// @Summary  Get a registry
// @Tags     registries
// @Produce  json
// @Param    owner path string true "registry owner"
// @Success  200 {object} model.Registry
// @Failure  404 {object} errorPayload
// @Router   /registries/{owner} [get]
func GetRegistry(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reg, err := svc.GetRegistry(c.UserContext(), c.Params("owner"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reg)
	}
}

// RegisterContributor creates the empty reputation of a contributor.
//
// @Summary  Register a contributor
// @Tags     reputations
// @Accept   json
// @Produce  json
// @Param    body body registerContributorRequest true "contributor identity"
// @Success  201 {object} model.Reputation
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /reputations [post]
func RegisterContributor(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerContributorRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		rep, err := svc.RegisterContributor(c.UserContext(), req.Contributor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rep)
	}
}

// GetReputation returns a contributor's reputation.
//
// @Summary  Get a reputation
// @Tags     reputations
// @Produce  json
// @Param    contributor path string true "contributor identity"
// @Success  200 {object} model.Reputation
// @Failure  404 {object} errorPayload
// @Router   /reputations/{contributor} [get]
func GetReputation(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rep, err := svc.GetReputation(c.UserContext(), c.Params("contributor"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rep)
	}
}
