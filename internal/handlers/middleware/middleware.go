package middleware

import (
	"strings"

	"skynet/internal/logger"
	. "skynet/internal/models"
	"skynet/internal/repositories"
	"skynet/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	sessions    services.SessionStore
	profileRepo repositories.ProfileRepository
	log         logger.Logger
}

func New(sessions services.SessionStore, profileRepo repositories.ProfileRepository) Middleware {
	return Middleware{
		sessions:    sessions,
		profileRepo: profileRepo,
		log:         logger.New("middleware"),
	}
}

// Token pulls the bearer credential from the Authorization header, falling
// back to the session cookie the browser client sets.
func Token(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies("session")
}

// RequireSession is the session guard. An empty allowed set admits any
// authenticated identity. The role is re-derived from the profile row on
// every request. Every failure mode (missing token, dead session, lookup
// error, role outside the set) answers the same way: 401 with the login
// redirect, never a distinct forbidden page.
func (m Middleware) RequireSession(allowedRoles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := Token(c)

		profileID, err := m.sessions.Resolve(c.Context(), token)
		if err != nil {
			return redirectToLogin(c)
		}

		profile, err := m.profileRepo.GetByID(c.Context(), profileID)
		if err != nil {
			return redirectToLogin(c)
		}

		if len(allowedRoles) > 0 && !roleAllowed(profile.Role(), allowedRoles) {
			return redirectToLogin(c)
		}

		c.Locals("profile", *profile)
		c.Locals("token", token)

		return c.Next()
	}
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

func redirectToLogin(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"message": "unauthorized", "redirect": "/login"})
}

// SessionProfile returns the authenticated profile stored by RequireSession.
func SessionProfile(c *fiber.Ctx) Profile {
	profile, _ := c.Locals("profile").(Profile)
	return profile
}
