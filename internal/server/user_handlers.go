package server

import (
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Dashboard renders a user's profile page.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userService.GetByUsername(c.UserContext(), username)
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}

	ident := identityFrom(c)
	return s.render(c, "dashboard", fiber.Map{
		"Title":   user.Username,
		"Profile": user,
		"IsOwner": ident.UserID == user.ID,
	})
}

// EditUserForm renders the profile edit page for the profile's owner.
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "User not found")
	}

	ident := identityFrom(c)
	if userID != ident.UserID {
		return s.renderErrorPage(c, fiber.StatusForbidden, "You can only edit your own profile")
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}
	if user == nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "User not found")
	}

	return s.render(c, "edit-user-info", fiber.Map{
		"Title":   "Edit Profile",
		"Profile": user,
	})
}

// EditUser updates the profile's username, bio, and avatar, owner only.
func (s *Server) EditUser(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userID")
	if err != nil {
		return s.renderErrorPage(c, fiber.StatusNotFound, "User not found")
	}
	ident := identityFrom(c)

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ActorID:  ident.UserID,
		UserID:   userID,
		Username: c.FormValue("username"),
		Bio:      c.FormValue("bio"),
		Avatar:   c.FormValue("avatar"),
	})
	if err != nil {
		return s.failAndRedirect(c, err, fmt.Sprintf("/edit-user-info/%s/%d", c.Params("username"), userID))
	}

	// Reissue the session so the cookie carries the new username.
	if err := s.establishSession(c, user); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to reissue session after profile edit", "error", err)
	}
	return c.Redirect("/dashboard/"+user.Username, fiber.StatusSeeOther)
}
