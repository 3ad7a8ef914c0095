// middleware/auth.go
package middleware

import (
	"strings"

	"challenge-hub-system/models"
	"challenge-hub-system/services"
	"challenge-hub-system/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected authenticates the request from a Bearer header or the session
// cookie, loads the account, and stashes it in Locals for handlers.
func Protected(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		} else if cookie := c.Cookies("token"); cookie != "" {
			token = cookie
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		userID, err := utils.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}
		user, err := users.FindByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// CurrentUser returns the account set by Protected, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// RestrictTo rejects authenticated users whose role is not in roles.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "You are not logged in!"})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You don't have permission to perform this action",
		})
	}
}
