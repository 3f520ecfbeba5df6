package handlers

import (
	"errors"

	"toytopia/internal/models"
	"toytopia/internal/repositories"
	"toytopia/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ToyHandler handles HTTP requests for toys.
type ToyHandler struct {
	service *services.ToyService
	log     zerolog.Logger
}

// NewToyHandler creates a new ToyHandler.
func NewToyHandler(service *services.ToyService, log zerolog.Logger) *ToyHandler {
	return &ToyHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the toy routes with the Fiber router.
func (h *ToyHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/allToys", h.HandleListToys)
	router.Get("/allToys/:text", h.HandleListByCategory)
	router.Get("/toys/:id", h.HandleGetToy)
	router.Get("/mytoy", h.HandleListBySeller)
	router.Post("/addtoy", h.HandleCreateToy)
	router.Patch("/updatetoy/:id", h.HandleUpdateToy)
	router.Delete("/toys/:id", h.HandleDeleteToy)
}

// fail writes the error response for err. Malformed identifiers are the
// client's fault; anything else is reported as a store failure.
func (h *ToyHandler) fail(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, repositories.ErrInvalidID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid toy id",
			"error":   err.Error(),
		})
	}

	h.log.Error().Err(err).Str("path", c.Path()).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// HandleListToys returns the first page of toys.
func (h *ToyHandler) HandleListToys(c *fiber.Ctx) error {
	toys, err := h.service.ListToys(c.UserContext())
	if err != nil {
		return h.fail(c, err, "Could not retrieve toys")
	}
	return c.JSON(toys)
}

// HandleGetToy returns the projected toy, or null when it does not exist.
func (h *ToyHandler) HandleGetToy(c *fiber.Ctx) error {
	toy, err := h.service.GetToy(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve toy")
	}
	return c.JSON(toy)
}

// HandleListByCategory returns the toys of a category. Unsupported categories
// produce an empty list.
func (h *ToyHandler) HandleListByCategory(c *fiber.Ctx) error {
	toys, err := h.service.ListByCategory(c.UserContext(), c.Params("text"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve toys by category")
	}
	return c.JSON(toys)
}

// HandleListBySeller returns the toys of the seller named by the email query
// parameter, or every toy when it is absent.
func (h *ToyHandler) HandleListBySeller(c *fiber.Ctx) error {
	toys, err := h.service.ListBySeller(c.UserContext(), c.Query("email"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve seller toys")
	}
	return c.JSON(toys)
}

// HandleCreateToy creates a toy from the request body.
func (h *ToyHandler) HandleCreateToy(c *fiber.Ctx) error {
	var input models.ToyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	res, err := h.service.CreateToy(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err, "Could not create toy")
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleUpdateToy sets the fields of a toy, creating it when absent.
func (h *ToyHandler) HandleUpdateToy(c *fiber.Ctx) error {
	var input models.ToyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	res, err := h.service.UpdateToy(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.fail(c, err, "Could not update toy")
	}
	return c.JSON(res)
}

// HandleDeleteToy deletes a toy.
func (h *ToyHandler) HandleDeleteToy(c *fiber.Ctx) error {
	res, err := h.service.DeleteToy(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not delete toy")
	}
	return c.JSON(res)
}
