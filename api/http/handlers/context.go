package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorID reads the verified user id set by the auth middleware.
// A parse failure here means the middleware did not run or set garbage,
// which must read as unauthenticated, never as a server error.
func actorID(c *fiber.Ctx) (uuid.UUID, bool) {
	userIDStr, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(userIDStr)
	return id, err == nil
}
