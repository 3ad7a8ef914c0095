package handlers

import (
	"challenge-hub-system/middleware"
	"challenge-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func SetupUserRoutes(app *fiber.App, users *services.UserService) {
	h := &UserHandler{users: users}
	auth := middleware.Protected(users)

	r := app.Group("/user", auth)
	r.Put("/update", h.UpdateProfile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid JSON"})
	}

	current := middleware.CurrentUser(c)
	user, err := h.users.UpdateProfile(current.ID, req.Name, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "success", "user": user})
}
