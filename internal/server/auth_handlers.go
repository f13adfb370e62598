package server

import (
	"fmt"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

type signupData struct {
	viewContext
	Username string
	Email    string
	ImageURL string
}

type loginData struct {
	viewContext
	Username string
}

// ShowSignup renders the registration form.
func (s *Server) ShowSignup(c *fiber.Ctx) error {
	return s.render(c, "signup", signupData{viewContext: s.view(c)})
}

// Signup creates an account and logs the new user in.
//
// A taken username or email surfaces as an integrity error from the insert
// and re-renders the form with a flash; the submitted values are echoed back
// so the visitor only has to fix the offending field.
func (s *Server) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	email := c.FormValue("email")
	password := c.FormValue("password")
	imageURL := c.FormValue("image_url")

	user, err := s.authService.Signup(c.Context(), username, email, password, imageURL)
	if err != nil {
		switch {
		case models.IsIntegrityError(err):
			s.flash(c, "danger", "Username already taken")
		case models.IsValidationError(err):
			s.flash(c, "danger", err.Error())
		default:
			return s.serverError(c, err)
		}
		return s.render(c, "signup", signupData{
			viewContext: s.view(c),
			Username:    username,
			Email:       email,
			ImageURL:    imageURL,
		})
	}

	if err := s.loginSession(c, user.ID); err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// ShowLogin renders the login form.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	return s.render(c, "login", loginData{viewContext: s.view(c)})
}

// Login verifies credentials and starts a session. Unknown usernames and
// wrong passwords get the same flash, no hint which half was wrong.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.authService.Authenticate(c.Context(), username, password)
	if err != nil {
		return s.serverError(c, err)
	}
	if user == nil {
		s.flash(c, "danger", "Invalid credentials.")
		return s.render(c, "login", loginData{
			viewContext: s.view(c),
			Username:    username,
		})
	}

	if err := s.loginSession(c, user.ID); err != nil {
		return s.serverError(c, err)
	}
	s.flash(c, "success", fmt.Sprintf("Hello, %s!", user.Username))
	return c.Redirect("/", fiber.StatusFound)
}

// Logout destroys the session and bounces to the login page.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.logoutSession(c)
	s.flash(c, "success", "You have successfully logged out.")
	return c.Redirect("/login", fiber.StatusFound)
}
