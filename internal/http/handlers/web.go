package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	index []byte
}

func NewWebHandler(index []byte) *WebHandler {
	return &WebHandler{index: index}
}

// GET /
func (h *WebHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}
