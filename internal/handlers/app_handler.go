package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/services"
)

type AppHandler struct {
	AppService *services.AppService
}

func NewAppHandler(s *services.AppService) *AppHandler {
	return &AppHandler{AppService: s}
}

// Hello serves the earliest greeting row. An empty table yields an empty 200.
func (h *AppHandler) Hello(c *gin.Context) {
	hello, err := h.AppService.Hello(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if hello == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, hello)
}

func (h *AppHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.AppService.Health())
}
