package ui

import (
	"fmt"
	"html/template"
	"net/http"

	"gostock/app"
	"gostock/internal"
	"gostock/internal/session"

	"github.com/gin-gonic/gin"
)

// MaxColumns caps the declared column count accepted from the form
const MaxColumns = 100

// Server represents the web server for the stock form
type Server struct {
	router    *gin.Engine
	service   *app.StockService
	sessions  *session.Store
	templates *template.Template
	intro     template.HTML
	config    Config
	logger    *internal.Logger
}

// Config holds UI settings
type Config struct {
	Title         string
	IntroMarkdown string
	CookieName    string
	CookieMaxAge  int // seconds
	SecureCookie  bool
}

// NewServer creates a new web server instance
func NewServer(service *app.StockService, sessions *session.Store, config Config, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.CookieName == "" {
		config.CookieName = "gostock_session"
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		sessions:  sessions,
		templates: templates,
		intro:     RenderMarkdown(config.IntroMarkdown),
		config:    config,
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	pages := s.router.Group("/", s.sessionMiddleware())
	pages.GET("/", s.handleIndex)
	pages.POST("/settings", s.handleSettings)
	pages.POST("/create", s.handleCreate)
	pages.POST("/items", s.handleAddItem)
	pages.GET("/download", s.handleDownload)
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}
