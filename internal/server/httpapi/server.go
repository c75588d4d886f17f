// Package httpapi implements the HTTP surface of the weather monitor: the
// location CRUD endpoints, login/logout, user administration, the database
// summary and the static web UI fallback.
package httpapi

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tikaboopeak/weather-monitor/internal/logging"
	"github.com/tikaboopeak/weather-monitor/internal/server/locations"
	"github.com/tikaboopeak/weather-monitor/internal/server/sessions"
	"github.com/tikaboopeak/weather-monitor/internal/server/users"
)

const RoleAdmin = "admin"

type Server struct {
	locations *locations.Service
	users     *users.Service
	sessions  *sessions.Service
	logger    logging.Logger
	webRoot   string
}

func NewServer(ls *locations.Service, us *users.Service, ss *sessions.Service, webRoot string, logger logging.Logger) *Server {
	return &Server{
		locations: ls,
		users:     us,
		sessions:  ss,
		logger:    logger.With("module", "httpapi"),
		webRoot:   webRoot,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/locations", s.listLocations)
	api.POST("/locations", s.requireRole(RoleAdmin), s.insertLocation)
	// gin's routing tree cannot hold /locations/bulk next to /locations/:id,
	// so the bulk route is dispatched inside the :id handler.
	api.PUT("/locations/:id", s.updateLocationOrBulk)
	api.DELETE("/locations/:id", s.deleteLocation)
	api.GET("/database", s.databaseInfo)
	api.POST("/login", s.login)
	api.POST("/logout", s.logout)
	api.POST("/users", s.requireRole(RoleAdmin), s.addUser)

	r.NoRoute(s.serveStatic)

	return r
}

// serveStatic is the thin static-file collaborator: "/" serves index.html
// from the web root, any other unmatched GET serves the matching file.
func (s *Server) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	rel := path.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
	if rel == "." || rel == "" {
		rel = "index.html"
	}
	if strings.HasPrefix(rel, "..") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.File(filepath.Join(s.webRoot, filepath.FromSlash(rel)))
}
