package server

import (
	"context"

	"inkwell/internal/middleware"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

const identityLocal = "identity"

// identityFrom returns the authenticated identity stored by AuthRequired.
func identityFrom(c *fiber.Ctx) *session.Identity {
	ident, _ := c.Locals(identityLocal).(*session.Identity)
	return ident
}

// currentIdentity parses the session cookie without enforcing it. Used on
// public pages to vary navigation for logged-in visitors.
func (s *Server) currentIdentity(c *fiber.Ctx) *session.Identity {
	if ident := identityFrom(c); ident != nil {
		return ident
	}
	token := c.Cookies(session.CookieName)
	if token == "" {
		return nil
	}
	ident, err := s.sessions.Parse(c.UserContext(), token)
	if err != nil {
		return nil
	}
	return ident
}

// AuthRequired redirects visitors without a valid session to the login page.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			setFlash(c, flashError, "Please log in to continue")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		ident, err := s.sessions.Parse(c.UserContext(), token)
		if err != nil {
			clearSessionCookie(c)
			setFlash(c, flashError, "Your session has expired, please log in again")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals(identityLocal, ident)
		c.Locals("userID", ident.UserID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, ident.UserID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// AdminRequired rejects non-admin users with a Forbidden page. Must run
// after AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := identityFrom(c)
		if ident == nil {
			return s.renderErrorPage(c, fiber.StatusForbidden, "Admin access required")
		}

		user, err := s.userRepo.GetByID(c.UserContext(), ident.UserID)
		if err != nil {
			return s.renderErrorPage(c, fiber.StatusInternalServerError, "Something went wrong on our side.")
		}
		if user == nil || !user.IsAdmin {
			return s.renderErrorPage(c, fiber.StatusForbidden, "Admin access required")
		}

		return c.Next()
	}
}

// AnonOnly sends already-authenticated visitors back to the index. Register
// and login forms make no sense with an active session.
func (s *Server) AnonOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.currentIdentity(c) != nil {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
