package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/service"
)

// SeedHandler генерирует фейковые данные. Доступен только вне production.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler создаёт хэндлер.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed обрабатывает POST /seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req struct {
		NumUsers    int `json:"num_users"`
		NumProjects int `json:"num_projects"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		req.NumUsers = 0
		req.NumProjects = 0
	}

	if req.NumUsers < 2 {
		req.NumUsers = 20
	}
	if req.NumUsers > 500 {
		req.NumUsers = 500
	}
	if req.NumProjects < 1 {
		req.NumProjects = 30
	}
	if req.NumProjects > 1000 {
		req.NumProjects = 1000
	}

	if err := h.seed.SeedData(c.Request.Context(), req.NumUsers, req.NumProjects); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "данные сгенерированы",
		"num_users":    req.NumUsers,
		"num_projects": req.NumProjects,
	})
}
