package handlers

import (
	"time"

	"challenge-hub-system/middleware"
	"challenge-hub-system/services"
	"challenge-hub-system/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users *services.UserService
}

func SetupAuthRoutes(app *fiber.App, users *services.UserService) {
	h := &AuthHandler{users: users}
	auth := middleware.Protected(users)

	r := app.Group("/auth")
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/me", auth, h.Me)
	r.Get("/logout", h.Logout)
}

func sessionCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid JSON"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	if _, err := h.users.FindByEmail(req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
	}

	user, err := h.users.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return writeError(c, err)
	}

	c.Cookie(sessionCookie(token))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid JSON"})
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil || !h.users.CheckPassword(user, req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return writeError(c, err)
	}

	c.Cookie(sessionCookie(token))
	return c.JSON(fiber.Map{"message": "success", "user": user, "token": token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": middleware.CurrentUser(c)})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
	})
	return c.JSON(fiber.Map{"message": "success"})
}
