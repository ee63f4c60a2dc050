package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsurePlayerID guarantees every request carries a player identity.
// The client may supply one via the X-Player-ID header or the playerId
// query parameter; otherwise a fresh UUID is minted and echoed back in
// the response header so the client can keep using it.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			playerID = uuid.New().String()
		}

		c.Set("X-Player-ID", playerID)
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
