package server

import (
	"log/slog"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Session keys for the pending flash message.
const (
	flashMessageKey  = "flash_message"
	flashCategoryKey = "flash_category"
)

// Flash is a one-shot notification rendered by the next page load.
type Flash struct {
	Category string
	Message  string
}

// currentUser resolves the session's curr_user key to a user. Returns nil
// for anonymous sessions and for stale ids pointing at deleted users.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	id, ok := sess.Get(CurrUserKey).(uint)
	if !ok {
		return nil
	}
	user, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session user lookup failed",
			slog.Any("user_id", id), slog.String("error", err.Error()))
		return nil
	}
	if user != nil {
		c.Locals("userID", user.ID)
	}
	return user
}

// loginSession writes the current-user key. This is the only transition from
// Anonymous to Authenticated.
func (s *Server) loginSession(c *fiber.Ctx, userID uint) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(CurrUserKey, userID)
	return sess.Save()
}

// logoutSession drops the whole session.
func (s *Server) logoutSession(c *fiber.Ctx) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	_ = sess.Destroy()
}

// flash stores a one-shot notification for the next rendered page.
func (s *Server) flash(c *fiber.Ctx, category, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	sess.Set(flashCategoryKey, category)
	sess.Set(flashMessageKey, message)
	_ = sess.Save()
}

// popFlash returns the pending flash, clearing it from the session.
func (s *Server) popFlash(c *fiber.Ctx) *Flash {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	message, ok := sess.Get(flashMessageKey).(string)
	if !ok || message == "" {
		return nil
	}
	category, _ := sess.Get(flashCategoryKey).(string)
	sess.Delete(flashMessageKey)
	sess.Delete(flashCategoryKey)
	_ = sess.Save()
	return &Flash{Category: category, Message: message}
}

// unauthorized is the guard response for unauthenticated or non-owner
// actions: flash the marker and bounce home, where the landing page renders
// it with a 200 status. Never an error status; this is flash-message UX.
func (s *Server) unauthorized(c *fiber.Ctx) error {
	s.flash(c, "danger", "Access unauthorized.")
	return c.Redirect("/", fiber.StatusFound)
}

// parseID extracts a route parameter as a positive uint. A second return of
// false means the 404 response has already been written.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusNotFound).SendString("Not Found")
		return 0, false
	}
	return uint(id), true
}

// notFound writes the plain 404 page.
func (s *Server) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).SendString("Not Found")
}

// serverError logs the failure and returns a plain 500.
func (s *Server) serverError(c *fiber.Ctx, err error) error {
	middleware.Logger.ErrorContext(c.UserContext(), "request failed",
		slog.String("path", c.Path()), slog.String("error", err.Error()))
	return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
}
