package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"warbler/internal/auth"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sessionCookieName = "warbler_session"

func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.CreateAll(db))

	userRepo := repository.NewUserRepository(db)
	s := &Server{
		config:      &config.Config{Env: "test", Port: "8080", DatabaseURL: ":memory:"},
		db:          db,
		sessions:    session.New(session.Config{KeyLookup: "cookie:" + sessionCookieName}),
		users:       userRepo,
		messages:    repository.NewMessageRepository(db),
		follows:     repository.NewFollowRepository(db),
		likes:       repository.NewLikeRepository(db),
		authService: service.NewAuthService(userRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// createTestUser inserts a user directly, bypassing the signup handler. A
// nonzero id pins the primary key so URLs in assertions stay literal.
func createTestUser(t *testing.T, s *Server, id uint, username, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:       username,
		Email:          username + "@test.com",
		Password:       hash,
		ImageURL:       service.DefaultImageURL,
		HeaderImageURL: service.DefaultHeaderImageURL,
	}
	if id != 0 {
		user.ID = id
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func createTestMessage(t *testing.T, s *Server, id, userID uint, text string) *models.Message {
	t.Helper()

	message := &models.Message{Text: text, UserID: userID}
	if id != 0 {
		message.ID = id
	}
	require.NoError(t, s.db.Create(message).Error)
	return message
}

func doRequest(t *testing.T, app *fiber.App, method, target, cookie string, form url.Values) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func updateCookie(resp *http.Response, cookie string) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookieName {
			return sessionCookieName + "=" + ck.Value
		}
	}
	return cookie
}

// finalPage performs the request and follows redirects with the session
// cookie attached, returning the status and body of the final response.
func finalPage(t *testing.T, app *fiber.App, method, target, cookie string, form url.Values) (int, string) {
	t.Helper()

	for i := 0; i < 5; i++ {
		resp := doRequest(t, app, method, target, cookie, form)
		cookie = updateCookie(resp, cookie)

		if resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusMovedPermanently {
			target = resp.Header.Get("Location")
			method = http.MethodGet
			form = nil
			_ = resp.Body.Close()
			continue
		}

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode, string(b)
	}
	t.Fatal("redirect loop")
	return 0, ""
}

// loginAs posts the login form and returns the session cookie.
func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/login", "", url.Values{
		"username": {username},
		"password": {password},
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusFound, resp.StatusCode, "valid login should redirect")
	cookie := updateCookie(resp, "")
	require.NotEmpty(t, cookie, "login should issue a session cookie")
	return cookie
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}
