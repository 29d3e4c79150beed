package server

import (
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

// clearSessionCookie expires the session cookie.
func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// render builds the common view model (flash message, navigation state) and
// renders the named template.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	if flash := popFlash(c); flash != nil {
		data["Flash"] = flash
	}

	if ident := s.currentIdentity(c); ident != nil {
		data["LoggedIn"] = true
		data["CurrentUserID"] = ident.UserID
		data["CurrentUsername"] = ident.Username

		user, err := s.userRepo.GetByID(c.UserContext(), ident.UserID)
		if err == nil && user != nil {
			data["IsAdmin"] = user.IsAdmin
		}
	}

	return c.Render(name, data)
}

// renderErrorPage renders the error template with the given status.
func (s *Server) renderErrorPage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Status":  status,
		"Message": message,
	})
}

// failAndRedirect handles errors from the service layer for form posts.
// Validation and conflict errors become a flash on the originating form;
// authorization failures get the Forbidden page; everything else is a 500.
func (s *Server) failAndRedirect(c *fiber.Ctx, err error, backTo string) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return s.renderErrorPage(c, fiber.StatusInternalServerError, "Something went wrong on our side.")
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeConflict:
		setFlash(c, flashError, appErr.Message)
		return c.Redirect(backTo, fiber.StatusSeeOther)
	case models.CodeForbidden, models.CodeUnauthorized:
		return s.renderErrorPage(c, fiber.StatusForbidden, appErr.Message)
	case models.CodeNotFound:
		return s.renderErrorPage(c, fiber.StatusNotFound, appErr.Message)
	default:
		return s.renderErrorPage(c, fiber.StatusInternalServerError, "Something went wrong on our side.")
	}
}

// paramUint parses a numeric route parameter.
func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := c.ParamsInt(name)
	if err != nil || v < 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(v), nil
}
