package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"bloombuilder/internal/apperrors"
	"bloombuilder/internal/models"
	"bloombuilder/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FlowerHandler handles HTTP requests for flowers. Handlers return errors
// unchanged; the app's error handler turns them into responses.
type FlowerHandler struct {
	service *services.FlowerService
}

// NewFlowerHandler creates a new FlowerHandler.
func NewFlowerHandler(service *services.FlowerService) *FlowerHandler {
	return &FlowerHandler{
		service: service,
	}
}

// RegisterRoutes registers the flower routes with the Fiber app.
func (h *FlowerHandler) RegisterRoutes(router fiber.Router) {
	flowerRoutes := router.Group("/flowers")
	flowerRoutes.Get("/", h.HandleListFlowers)
	flowerRoutes.Get("/:id", h.HandleGetFlower)
	flowerRoutes.Post("/", h.HandleCreateFlower)
	flowerRoutes.Put("/:id", h.HandleUpdateFlower)
	flowerRoutes.Delete("/:id", h.HandleDeleteFlower)
}

// HandleListFlowers retrieves all flowers.
func (h *FlowerHandler) HandleListFlowers(c *fiber.Ctx) error {
	flowers, err := h.service.ListFlowers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(flowers)
}

// HandleGetFlower retrieves a single flower by its ID.
func (h *FlowerHandler) HandleGetFlower(c *fiber.Ctx) error {
	flower, err := h.service.GetFlower(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(flower)
}

// HandleCreateFlower creates a new flower.
func (h *FlowerHandler) HandleCreateFlower(c *fiber.Ctx) error {
	var input models.FlowerInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.service.CreateFlower(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateFlower applies a partial update to an existing flower.
func (h *FlowerHandler) HandleUpdateFlower(c *fiber.Ctx) error {
	var patch models.FlowerPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	updated, err := h.service.UpdateFlower(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// HandleDeleteFlower deletes a flower by its ID.
func (h *FlowerHandler) HandleDeleteFlower(c *fiber.Ctx) error {
	if err := h.service.DeleteFlower(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// parseBody decodes a JSON body into out. An empty body decodes to the zero
// value; any decoding failure is a validation error.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperrors.Validation(fmt.Sprintf("%s must be a %s", typeErr.Field, describeKind(typeErr.Type.String())))
		}
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return apperrors.Validation("request body must be JSON")
		}
		return apperrors.Validation("invalid request body")
	}
	return nil
}

func describeKind(goType string) string {
	switch goType {
	case "float64", "*float64":
		return "number"
	case "int", "*int":
		return "whole number"
	default:
		return "string"
	}
}
