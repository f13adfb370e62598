package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

type homeData struct {
	viewContext
	Messages []models.Message
}

// Home renders the landing page. Anonymous visitors get the signup pitch;
// authenticated users get the most recent messages from the people they
// follow, plus their own.
func (s *Server) Home(c *fiber.Ctx) error {
	vc := s.view(c)
	if vc.CurrentUser == nil {
		return s.render(c, "home_anon", vc)
	}

	following, err := s.follows.Following(c.Context(), vc.CurrentUser.ID)
	if err != nil {
		return s.serverError(c, err)
	}

	feedIDs := make([]uint, 0, len(following)+1)
	for _, u := range following {
		feedIDs = append(feedIDs, u.ID)
	}
	feedIDs = append(feedIDs, vc.CurrentUser.ID)

	messages, err := s.messages.Feed(c.Context(), feedIDs, 100)
	if err != nil {
		return s.serverError(c, err)
	}

	return s.render(c, "home", homeData{viewContext: vc, Messages: messages})
}
