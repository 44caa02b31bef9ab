package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/service"
)

// BidHandler предоставляет HTTP слой для ставок.
type BidHandler struct {
	bids *service.BidService
}

// NewBidHandler создаёт хэндлер.
func NewBidHandler(bids *service.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// Place обрабатывает POST /projects/:id/bids.
func (h *BidHandler) Place(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		BidAmount float64 `json:"bid_amount" binding:"required"`
		Proposal  string  `json:"proposal" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := h.bids.PlaceBid(c.Request.Context(), userID, role, service.PlaceBidInput{
		ProjectID: projectID,
		BidAmount: req.BidAmount,
		Proposal:  req.Proposal,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// Decide обрабатывает PATCH /bids/:id - принятие или отклонение ставки.
func (h *BidHandler) Decide(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	bidID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case models.BidStatusAccepted:
		bid, order, err := h.bids.AcceptBid(c.Request.Context(), userID, role, bidID)
		if err != nil {
			common.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bid": bid, "order": order})

	case models.BidStatusRejected:
		bid, err := h.bids.RejectBid(c.Request.Context(), userID, role, bidID)
		if err != nil {
			common.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bid": bid})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "статус должен быть accepted или rejected"})
	}
}

// ListByProject обрабатывает GET /projects/:id/bids.
func (h *BidHandler) ListByProject(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bids, err := h.bids.ListProjectBids(c.Request.Context(), userID, role, projectID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// ListMine обрабатывает GET /bids/my - ставки текущего фрилансера.
func (h *BidHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	bids, err := h.bids.ListFreelancerBids(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// ListForClient обрабатывает GET /bids/client - ставки на проекты клиента.
func (h *BidHandler) ListForClient(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	bids, err := h.bids.ListClientBids(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// ListAll обрабатывает GET /admin/bids.
func (h *BidHandler) ListAll(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	bids, err := h.bids.ListAllBids(c.Request.Context(), role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}
