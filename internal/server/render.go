package server

import (
	"bytes"
	"embed"
	"html/template"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// viewContext carries the fields every page shares.
type viewContext struct {
	CurrentUser *models.User
	Flash       *Flash
}

// view builds the shared context for the request, consuming any pending
// flash message.
func (s *Server) view(c *fiber.Ctx) viewContext {
	return viewContext{
		CurrentUser: s.currentUser(c),
		Flash:       s.popFlash(c),
	}
}

// render executes the named page template with a 200 status.
func (s *Server) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return models.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
