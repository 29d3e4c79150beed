package server

import (
	"fmt"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// Index lists all posts, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.failAndRedirect(c, err, "/")
	}
	return s.render(c, "index", fiber.Map{
		"Title": "Home",
		"Posts": posts,
	})
}

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{"Title": "About"})
}

// ContactForm renders the contact page.
func (s *Server) ContactForm(c *fiber.Ctx) error {
	return s.render(c, "contact", fiber.Map{"Title": "Contact"})
}

// ContactSubmit sends the contact form as an email. Delivery failure is a
// flash message, never a server fault.
func (s *Server) ContactSubmit(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	message := strings.TrimSpace(c.FormValue("message"))

	if name == "" || email == "" || message == "" {
		setFlash(c, flashError, "Name, email, and message are required")
		return c.Redirect("/contact", fiber.StatusSeeOther)
	}

	recipient := s.config.ContactRecipient
	if recipient == "" {
		recipient = s.config.AdminEmail
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", name, email, phone, message)
	if err := s.mailer.Send(c.UserContext(), "New contact form message", body, recipient); err != nil {
		observability.MailSendFailures.Inc()
		middleware.Logger.ErrorContext(c.UserContext(), "contact mail delivery failed", "error", err)
		setFlash(c, flashError, "Could not send your message, please try again later")
		return c.Redirect("/contact", fiber.StatusSeeOther)
	}

	setFlash(c, flashSuccess, "Your message has been sent")
	return c.Redirect("/contact", fiber.StatusSeeOther)
}
