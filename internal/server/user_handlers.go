package server

import (
	"fmt"

	"warbler/internal/auth"
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

type usersIndexData struct {
	viewContext
	Users []models.User
	Query string
}

type userShowData struct {
	viewContext
	Profile        *models.User
	Messages       []models.Message
	MessageCount   int
	FollowingCount int
	FollowerCount  int
	LikeCount      int
	ViewerFollows  bool
}

type userListData struct {
	viewContext
	Profile *models.User
	Users   []models.User
	Title   string
}

type likesData struct {
	viewContext
	Profile  *models.User
	Messages []models.Message
}

// ListUsers shows the user directory, optionally filtered by a
// case-insensitive username search.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	query := c.Query("q")

	var (
		users []models.User
		err   error
	)
	if query == "" {
		users, err = s.users.List(c.Context())
	} else {
		users, err = s.users.Search(c.Context(), query)
	}
	if err != nil {
		return s.serverError(c, err)
	}

	return s.render(c, "users_index", usersIndexData{
		viewContext: s.view(c),
		Users:       users,
		Query:       query,
	})
}

// ShowUser renders a profile page: the user's messages newest first, plus
// follower, following, and like counts linking to the detail pages.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	profile, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if profile == nil {
		return s.notFound(c)
	}

	messages, err := s.messages.ListByUser(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	following, err := s.follows.Following(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	followers, err := s.follows.Followers(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	liked, err := s.likes.MessagesLikedBy(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}

	vc := s.view(c)
	viewerFollows := false
	if vc.CurrentUser != nil && vc.CurrentUser.ID != id {
		viewerFollows, err = s.follows.IsFollowing(c.Context(), vc.CurrentUser.ID, id)
		if err != nil {
			return s.serverError(c, err)
		}
	}

	return s.render(c, "users_show", userShowData{
		viewContext:    vc,
		Profile:        profile,
		Messages:       messages,
		MessageCount:   len(messages),
		FollowingCount: len(following),
		FollowerCount:  len(followers),
		LikeCount:      len(liked),
		ViewerFollows:  viewerFollows,
	})
}

// ShowFollowing lists who a user follows. Login required.
func (s *Server) ShowFollowing(c *fiber.Ctx) error {
	vc := s.view(c)
	if vc.CurrentUser == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	profile, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if profile == nil {
		return s.notFound(c)
	}
	users, err := s.follows.Following(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	return s.render(c, "user_list", userListData{
		viewContext: vc,
		Profile:     profile,
		Users:       users,
		Title:       "Following",
	})
}

// ShowFollowers lists a user's followers. Login required.
func (s *Server) ShowFollowers(c *fiber.Ctx) error {
	vc := s.view(c)
	if vc.CurrentUser == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	profile, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if profile == nil {
		return s.notFound(c)
	}
	users, err := s.follows.Followers(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	return s.render(c, "user_list", userListData{
		viewContext: vc,
		Profile:     profile,
		Users:       users,
		Title:       "Followers",
	})
}

// ShowLikes lists the messages a user has liked. Login required.
func (s *Server) ShowLikes(c *fiber.Ctx) error {
	vc := s.view(c)
	if vc.CurrentUser == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	profile, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if profile == nil {
		return s.notFound(c)
	}
	messages, err := s.likes.MessagesLikedBy(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	return s.render(c, "likes_page", likesData{
		viewContext: vc,
		Profile:     profile,
		Messages:    messages,
	})
}

// FollowUser adds a follow edge from the current user to the target.
// Following yourself is refused with the same guard response as being
// logged out.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if id == user.ID {
		return s.unauthorized(c)
	}
	target, err := s.users.GetByID(c.Context(), id)
	if err != nil {
		return s.serverError(c, err)
	}
	if target == nil {
		return s.notFound(c)
	}
	if err := s.follows.Follow(c.Context(), user.ID, id); err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", user.ID), fiber.StatusFound)
}

// StopFollowingUser removes the follow edge to the target.
func (s *Server) StopFollowingUser(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}
	id, ok := s.parseID(c, "id")
	if !ok {
		return nil
	}
	if err := s.follows.Unfollow(c.Context(), user.ID, id); err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d/following", user.ID), fiber.StatusFound)
}

// ShowEditProfile renders the profile form for the current user.
func (s *Server) ShowEditProfile(c *fiber.Ctx) error {
	vc := s.view(c)
	if vc.CurrentUser == nil {
		return s.unauthorized(c)
	}
	return s.render(c, "profile_edit", vc)
}

// EditProfile updates the current user's profile. The submitted password
// must verify against the stored hash before anything changes.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}

	if !auth.CheckPassword(user.Password, c.FormValue("password")) {
		s.flash(c, "danger", "Wrong password, please try again.")
		return c.Redirect("/", fiber.StatusFound)
	}

	user.Username = c.FormValue("username")
	user.Email = c.FormValue("email")
	user.ImageURL = c.FormValue("image_url")
	user.HeaderImageURL = c.FormValue("header_image_url")
	user.Bio = c.FormValue("bio")
	user.Location = c.FormValue("location")
	if user.ImageURL == "" {
		user.ImageURL = service.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = service.DefaultHeaderImageURL
	}

	if err := s.users.Update(c.Context(), user); err != nil {
		if models.IsIntegrityError(err) {
			s.flash(c, "danger", "Username already taken")
			return c.Redirect("/users/profile", fiber.StatusFound)
		}
		return s.serverError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/users/%d", user.ID), fiber.StatusFound)
}

// DeleteUser removes the current user's account and everything it owns,
// then ends the session.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return s.unauthorized(c)
	}
	s.logoutSession(c)
	if err := s.users.Delete(c.Context(), user.ID); err != nil {
		return s.serverError(c, err)
	}
	return c.Redirect("/signup", fiber.StatusFound)
}
