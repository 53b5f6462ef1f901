package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"fineboard/internal/logger"
	"fineboard/internal/models"
	"fineboard/internal/service"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// offenders is the fixed list offered by the entry form. The data layer
// accepts free text; the constraint lives in the UI only.
var offenders = []string{
	"Koong", "Noah", "Zander", "James", "Toby",
	"Lukas", "Elliot", "Cole", "Theo", "Robert",
}

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// loadTemplates parses the embedded page templates into a single set. Pages
// are addressed by file name; layout.html holds the shared partials.
func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// InitRoutes builds and returns the Gin router with all routes registered.
// Every request passes the session middleware first; route groups carry the
// gates, so no handler runs without its precondition.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.loadCurrentUser)
	router.SetHTMLTemplate(loadTemplates())

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embed layout is fixed at build time
	}
	router.StaticFS("/static", http.FS(staticSub))

	// Public allow-list: login, logout, one-time init, static assets.
	router.GET("/init", h.initBoard)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)

	// Any authenticated caller, regardless of role. Deletion deliberately
	// sits here, not behind the upper gate.
	authed := router.Group("/", h.requireUser)
	{
		authed.GET("", h.index)
		authed.GET("/totals", h.totals)
		authed.POST("/remove_fine/:id", h.removeFine)
		authed.GET("/ws", h.wsBoard)
	}

	// Proposing fines is upper-only.
	upper := router.Group("/add", h.requireRole(models.RoleUpper))
	{
		upper.GET("", h.addForm)
		upper.POST("", h.addFine)
	}

	return router
}
