package server

import (
	"errors"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/gofiber/fiber/v2"
)

// RegisterForm renders the registration page.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{"Title": "Register"})
}

// Register creates a new account and logs the user straight in.
func (s *Server) Register(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Username: strings.TrimSpace(c.FormValue("username")),
		Password: c.FormValue("password"),
		Avatar:   strings.TrimSpace(c.FormValue("avatar")),
	}

	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		var regErr *service.RegistrationError
		switch {
		case errors.As(err, &regErr):
			setFlash(c, flashError, strings.Join(regErr.Issues, "; "))
			return c.Redirect("/register", fiber.StatusSeeOther)
		case errors.Is(err, service.ErrEmailTaken):
			// Same behavior as the login form expects: the account exists,
			// so send the visitor there instead of back to registration.
			setFlash(c, flashError, "You've already signed up with that email, log in instead")
			return c.Redirect("/login", fiber.StatusSeeOther)
		case errors.Is(err, service.ErrUsernameTaken):
			setFlash(c, flashError, "That username is already taken")
			return c.Redirect("/register", fiber.StatusSeeOther)
		default:
			return s.failAndRedirect(c, err, "/register")
		}
	}

	if err := s.establishSession(c, user); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to establish session after registration", "error", err)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID, "username", user.Username)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginForm renders the login page.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{"Title": "Log In"})
}

// Login verifies credentials and establishes a session.
func (s *Server) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	user, err := s.userService.Login(c.UserContext(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongEmail):
			observability.LoginAttempts.WithLabelValues("wrong_email").Inc()
			setFlash(c, flashError, "That email does not exist, please try again")
		case errors.Is(err, service.ErrWrongPassword):
			observability.LoginAttempts.WithLabelValues("wrong_password").Inc()
			setFlash(c, flashError, "Password incorrect, please try again")
		default:
			observability.LoginAttempts.WithLabelValues("error").Inc()
			return s.failAndRedirect(c, err, "/login")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := s.establishSession(c, user); err != nil {
		observability.LoginAttempts.WithLabelValues("error").Inc()
		return s.failAndRedirect(c, models.NewInternalError(err), "/login")
	}

	observability.LoginAttempts.WithLabelValues("success").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout revokes the current session token and clears the cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	if ident := identityFrom(c); ident != nil {
		if err := s.sessions.Revoke(c.UserContext(), ident); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session", "error", err)
		}
	}
	clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// establishSession issues a session token for the user and sets the cookie.
func (s *Server) establishSession(c *fiber.Ctx, user *models.User) error {
	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(s.config.SessionTTL) * time.Hour),
		HTTPOnly: true,
		Secure:   s.config.Env == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}
