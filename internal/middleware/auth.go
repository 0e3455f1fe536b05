package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// SessionUserKey is the session entry holding the authenticated user's ID.
const SessionUserKey = "user_id"

const localsUserKey = "current_user_id"

// RequireAuth rejects requests without a valid login session and stores the
// authenticated user ID in the request locals.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		raw, ok := sess.Get(SessionUserKey).(string)
		if !ok || raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		c.Locals(localsUserKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by RequireAuth.
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, _ := c.Locals(localsUserKey).(uuid.UUID)
	return userID
}
