package http

import (
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	goskema "github.com/reoring/goskema"

	"portfolio-server/internal/model"
	"portfolio-server/internal/preview"
	"portfolio-server/internal/query"
	"portfolio-server/internal/usecase"
)

const themeCookieName = "color-scheme"

// Handler serves the content routes plus the preview-mode and theme cookie
// endpoints.
type Handler struct {
	content       *usecase.ContentService
	preview       *preview.Store
	previewSecret string
}

func NewHandler(content *usecase.ContentService, previewStore *preview.Store, previewSecret string) *Handler {
	return &Handler{content: content, preview: previewStore, previewSecret: previewSecret}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.Home)
	app.Get("/work", h.Projects)
	app.Get("/work/:slug", h.ProjectBySlug)
	app.Get("/blog", h.BlogPosts)
	app.Get("/blog/:slug", h.BlogPostBySlug)

	api := app.Group("/api")
	api.Get("/preview-mode/enable", h.EnablePreview)
	api.Get("/preview-mode/disable", h.DisablePreview)
	api.Post("/theme", h.Theme)
}

func (h *Handler) Home(c *fiber.Ctx) error {
	_, opt := h.preview.Options(c.Cookies(preview.CookieName))
	doc, err := h.content.GetHome(c.UserContext(), opt)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(doc)
}

func (h *Handler) Projects(c *fiber.Ctx) error {
	_, opt := h.preview.Options(c.Cookies(preview.CookieName))
	list, err := h.content.GetProjects(c.UserContext(), opt)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) ProjectBySlug(c *fiber.Ctx) error {
	_, opt := h.preview.Options(c.Cookies(preview.CookieName))
	doc, err := h.content.GetProjectBySlug(c.UserContext(), c.Params("slug"), opt)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(doc)
}

// BlogPosts serves the listing. When the experience filter is present the
// experience list is fetched too, so the page can render the job header. The
// two reads are independent and run concurrently.
func (h *Handler) BlogPosts(c *fiber.Ctx) error {
	_, opt := h.preview.Options(c.Cookies(preview.CookieName))
	f := query.Filter{
		Experience: c.Query("experience"),
		Tag:        c.Query("tag"),
	}
	ctx := c.UserContext()

	var (
		posts    *usecase.List[model.BlogPost]
		postsErr error
		exp      *usecase.List[model.Experience]
		expErr   error
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		posts, postsErr = h.content.GetBlogPosts(ctx, f, opt)
	}()
	if f.Experience != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exp, expErr = h.content.GetExperienceList(ctx, opt)
		}()
	}
	wg.Wait()

	if postsErr != nil {
		return h.renderError(c, postsErr)
	}
	if expErr != nil {
		return h.renderError(c, expErr)
	}

	payload := fiber.Map{"posts": posts}
	if exp != nil {
		payload["experience"] = exp
	}
	return c.JSON(payload)
}

func (h *Handler) BlogPostBySlug(c *fiber.Ctx) error {
	_, opt := h.preview.Options(c.Cookies(preview.CookieName))
	doc, err := h.content.GetBlogPostBySlug(c.UserContext(), c.Params("slug"), opt)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(doc)
}

// EnablePreview checks the shared preview secret and sets the signed session
// cookie before redirecting back into the site.
func (h *Handler) EnablePreview(c *fiber.Ctx) error {
	secret := c.Query("secret")
	if h.previewSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(h.previewSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid secret"})
	}

	value, err := h.preview.Encode(h.preview.NewSession())
	if err != nil {
		log.Printf("preview: encode session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     preview.CookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	redirectTo := c.Query("redirect", "/")
	// only same-site targets
	if !strings.HasPrefix(redirectTo, "/") || strings.HasPrefix(redirectTo, "//") {
		redirectTo = "/"
	}
	return c.Redirect(redirectTo, fiber.StatusFound)
}

// DisablePreview clears the session cookie and returns to the home page.
func (h *Handler) DisablePreview(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     preview.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.Redirect("/", fiber.StatusFound)
}

// Theme persists the color-scheme choice in a cookie.
func (h *Handler) Theme(c *fiber.Ctx) error {
	scheme := c.FormValue("color-scheme")
	switch scheme {
	case "light", "dark", "system":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid color-scheme"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     themeCookieName,
		Value:    scheme,
		Path:     "/",
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().AddDate(1, 0, 0),
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// renderError maps the error taxonomy onto status codes. NotFound is the
// expected miss; validation and upstream failures are logged because they
// indicate broken content or a broken store, not a bad URL.
func (h *Handler) renderError(c *fiber.Ctx, err error) error {
	if usecase.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var ue *usecase.UpstreamError
	if errors.As(err, &ue) {
		log.Printf("content store failure: %v", ue)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "content store unavailable"})
	}
	if iss, ok := goskema.AsIssues(err); ok {
		log.Printf("content validation failed: %v", iss)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "invalid content",
			"issues": issuePayload(iss),
		})
	}
	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

// issuePayload flattens validation issues to the documented {path, message}
// shape.
func issuePayload(iss goskema.Issues) []fiber.Map {
	out := make([]fiber.Map, 0, len(iss))
	for _, it := range iss {
		msg := it.Message
		if msg == "" {
			msg = it.Code
		}
		out = append(out, fiber.Map{"path": it.Path, "message": msg})
	}
	return out
}
