package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-market/internal/service"
)

// ProfileHandler предоставляет HTTP слой для профилей пользователей.
type ProfileHandler struct {
	users   *service.UserService
	reviews *service.ReviewService
}

// NewProfileHandler создаёт хэндлер.
func NewProfileHandler(users *service.UserService, reviews *service.ReviewService) *ProfileHandler {
	return &ProfileHandler{users: users, reviews: reviews}
}

// Me обрабатывает GET /profile - профиль текущего пользователя.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe обрабатывает PUT /profile - обновление профиля.
// Набор доступных полей зависит от роли.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	var req struct {
		Name         *string  `json:"name"`
		Password     *string  `json:"password"`
		ProfileImage *string  `json:"profile_image"`
		Skills       []string `json:"skills"`
		Portfolio    []string `json:"portfolio"`
		HourlyRate   *float64 `json:"hourly_rate"`
		CompanyName  *string  `json:"company_name"`
		Bio          *string  `json:"bio"`
		Location     *string  `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Name:         req.Name,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
		Skills:       req.Skills,
		Portfolio:    req.Portfolio,
		HourlyRate:   req.HourlyRate,
		CompanyName:  req.CompanyName,
		Bio:          req.Bio,
		Location:     req.Location,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser обрабатывает GET /users/:id - публичный профиль.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetFreelancerRating обрабатывает GET /users/:id/rating.
func (h *ProfileHandler) GetFreelancerRating(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.reviews.GetFreelancerRating(c.Request.Context(), targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

// GetFreelancerReviews обрабатывает GET /users/:id/reviews.
func (h *ProfileHandler) GetFreelancerReviews(c *gin.Context) {
	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviews, err := h.reviews.ListFreelancerReviews(c.Request.Context(), targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// ListUsers обрабатывает GET /admin/users.
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser обрабатывает DELETE /users/:id.
func (h *ProfileHandler) DeleteUser(c *gin.Context) {
	callerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}
	callerRole, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), callerID, callerRole, targetID); err != nil {
		common.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
