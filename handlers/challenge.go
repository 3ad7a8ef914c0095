package handlers

import (
	"path/filepath"

	"challenge-hub-system/middleware"
	"challenge-hub-system/models"
	"challenge-hub-system/services"
	"challenge-hub-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChallengeHandler struct {
	service *services.ChallengeService
}

func SetupChallengeRoutes(app *fiber.App, challenges *services.ChallengeService, users *services.UserService) {
	h := &ChallengeHandler{service: challenges}
	auth := middleware.Protected(users)
	admin := middleware.RestrictTo(models.RoleAdmin)

	r := app.Group("/challenge")
	r.Post("/create", auth, admin, h.Create)
	r.Get("/get/:id", auth, h.GetByID)
	r.Get("/get-all", h.GetAll)
	r.Get("/stats", auth, h.Stats)
	r.Get("/total-participants", h.TotalParticipants)
	r.Put("/update/:id", auth, admin, h.Update)
	r.Delete("/delete/:id", auth, admin, h.Delete)
	r.Post("/join/:id", auth, h.Join)
	r.Post("/:id/cover", auth, admin, h.UploadCover)
}

func (h *ChallengeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "invalid JSON"})
	}
	challenge, err := h.service.CreateChallenge(input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":    "success",
		"message":   "Challenge created successfully",
		"challenge": challenge,
	})
}

func (h *ChallengeHandler) GetByID(c *fiber.Ctx) error {
	challenge, err := h.service.GetChallengeByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "challenge": challenge})
}

func (h *ChallengeHandler) GetAll(c *fiber.Ctx) error {
	challenges, total, err := h.service.GetAllChallenges(c.Queries())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":          "success",
		"totalChallenges": total,
		"challenges":      challenges,
	})
}

func (h *ChallengeHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "invalid JSON"})
	}
	challenge, err := h.service.UpdateChallenge(c.Params("id"), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "challenge": challenge})
}

func (h *ChallengeHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteChallenge(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Challenge deleted successfully"})
}

func (h *ChallengeHandler) Join(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User ID is required"})
	}
	challenge, err := h.service.JoinChallenge(c.Params("id"), user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   "You successfully joined challenge",
		"challenge": challenge,
	})
}

func (h *ChallengeHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.GetChallengeStats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "challengeStats": stats})
}

func (h *ChallengeHandler) TotalParticipants(c *fiber.Ctx) error {
	total, err := h.service.GetTotalParticipants()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"totalParticipants": total})
}

// UploadCover stores the multipart "cover" file in the object store and
// points the challenge at it.
func (h *ChallengeHandler) UploadCover(c *fiber.Ctx) error {
	if !utils.ObjectStoreReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "error",
			"message": "cover uploads are not configured",
		})
	}
	cover, err := c.FormFile("cover")
	if err != nil || cover.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "cover file is required"})
	}

	ext := filepath.Ext(cover.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "challenges/covers/" + uuid.NewString() + ext
	url, err := utils.UploadObject(cover, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "failed to upload cover"})
	}

	challenge, err := h.service.UpdateCoverURL(c.Params("id"), url)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "challenge": challenge})
}
