package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tikaboopeak/weather-monitor/internal/common"
	"github.com/tikaboopeak/weather-monitor/internal/server/locations"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) listLocations(c *gin.Context) {
	records, err := s.locations.List(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "list locations failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) insertLocation(c *gin.Context) {
	var candidate locations.Record
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	stored, err := s.locations.Insert(c.Request.Context(), candidate)
	if err != nil {
		s.logger.Error(c.Request.Context(), "insert location failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if session, ok := sessionFromContext(c); ok {
		s.logger.Info(c.Request.Context(), "location added", "id", stored.ID(), "user", session.Username)
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) updateLocationOrBulk(c *gin.Context) {
	if c.Param("id") == "bulk" {
		s.bulkUpdateLocations(c)
		return
	}
	s.updateLocation(c)
}

func (s *Server) updateLocation(c *gin.Context) {
	var candidate locations.Record
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	stored, err := s.locations.Update(c.Request.Context(), c.Param("id"), candidate)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "update location failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *Server) deleteLocation(c *gin.Context) {
	removed, err := s.locations.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		s.logger.Error(c.Request.Context(), "delete location failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, removed)
}

func (s *Server) bulkUpdateLocations(c *gin.Context) {
	var candidates []locations.Record
	if err := c.ShouldBindJSON(&candidates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	updated, err := s.locations.BulkUpdate(c.Request.Context(), candidates)
	if err != nil {
		s.logger.Error(c.Request.Context(), "bulk update failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info(c.Request.Context(), "bulk update", "candidates", len(candidates), "updated", updated)
	c.JSON(http.StatusOK, gin.H{"message": "Locations updated successfully"})
}

func (s *Server) databaseInfo(c *gin.Context) {
	info, err := s.locations.Info(c.Request.Context())
	if err != nil {
		s.logger.Error(c.Request.Context(), "database info failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	session, err := s.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info(c.Request.Context(), "login", "user", session.Username)
	c.JSON(http.StatusOK, gin.H{
		"token":    session.Token,
		"role":     session.Role,
		"username": session.Username,
	})
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.Logout(c.Request.Context(), c.GetHeader("Authorization"))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) addUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	err := s.users.Add(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		s.logger.Error(c.Request.Context(), "add user failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info(c.Request.Context(), "user added", "username", req.Username, "role", req.Role)
	c.JSON(http.StatusOK, gin.H{"message": "User added"})
}
