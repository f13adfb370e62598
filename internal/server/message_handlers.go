package server

import (
	"fmt"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

type messageShowData struct {
	viewContext
	Message     *models.Message
	LikeCount   int64
	ViewerLikes bool
}

// AddMessage posts a new message for the current user and redirects to
// their profile. Empty text trips the check constraint and comes back as a
// flashed error instead of a new row.
func (s *Server) AddMessage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	message := &models.Message{
		Text:   c.FormValue("text"),
		UserID: user.ID,
	}
	if err := s.messages.Create(c.Context(), message); err != nil {
		if models.IsIntegrityError(err) || models.IsValidationError(err) {
			s.flash(c, "danger", "Message text is required.")
			return c.Redirect("/", fiber.StatusFound)
		}
		return s.serverError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// ShowMessage renders a single message with its like count.
func (s *Server) ShowMessage(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	message, err := s.messages.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if message == nil {
		return s.notFound(c)
	}

	likeCount, err := s.likes.CountForMessage(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}

	vc := s.view(c)
	viewerLikes := false
	if vc.CurrentUser != nil {
		viewerLikes, err = s.likes.IsLiked(c.Context(), vc.CurrentUser.ID, id)
		if err != nil {
			return s.serverError(c, err)
		}
	}

	return s.render(c, "message_show", messageShowData{
		viewContext: vc,
		Message:     message,
		LikeCount:   likeCount,
		ViewerLikes: viewerLikes,
	})
}

// LikeMessage toggles the current user's like on a message. Liking your own
// message is refused with the standard guard response.
func (s *Server) LikeMessage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	message, err := s.messages.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if message == nil {
		return s.notFound(c)
	}
	if message.UserID == user.ID {
		return s.unauthorized(c)
	}

	liked, err := s.likes.IsLiked(c.Context(), user.ID, id)
	if err != nil {
		return s.serverError(c, err)
	}
	if liked {
		err = s.likes.Unlike(c.Context(), user.ID, id)
	} else {
		err = s.likes.Like(c.Context(), user.ID, id)
	}
	if err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect("/", fiber.StatusFound)
}

// DeleteMessage removes a message. Only the author may delete it; anyone
// else gets the guard response, whether logged in or not.
func (s *Server) DeleteMessage(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	message, err := s.messages.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if message == nil {
		return s.notFound(c)
	}
	if message.UserID != user.ID {
		return s.unauthorized(c)
	}

	if err := s.messages.Delete(c.Context(), id); err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}
