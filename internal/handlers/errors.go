package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
	"github.com/justsurfingit/recruitment-tracker/internal/services"
)

// respondError maps service errors to HTTP. Anything unrecognised is a 500 and gets logged.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		abort(c, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		abort(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		abort(c, http.StatusInternalServerError, "Internal server error")
	}
}

func respondBadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dtos.ErrorResponse{
		StatusCode: code,
		Error:      http.StatusText(code),
		Message:    message,
	})
}

func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid application id: "+raw)
		return 0, false
	}
	return uint(id), true
}
