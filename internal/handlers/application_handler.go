package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(s *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: s}
}

// Create is POST /api/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	app, err := h.ApplicationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is GET /api/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.ApplicationService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListByEmail is GET /api/applications/by-email?email=
func (h *ApplicationHandler) ListByEmail(c *gin.Context) {
	apps, err := h.ApplicationService.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get is GET /api/applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	app, err := h.ApplicationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Update is PUT /api/applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dtos.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	app, err := h.ApplicationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete is DELETE /api/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.ApplicationService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
