package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/service"
)

// OrderHandler предоставляет HTTP слой для заказов.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler создаёт хэндлер.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create обрабатывает POST /orders - прямое создание заказа фрилансером.
func (h *OrderHandler) Create(c *gin.Context) {
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

	var req struct {
		ProjectID uuid.UUID   `json:"project_id" binding:"required"`
		StartDate models.Date `json:"start_date" binding:"required"`
		Deadline  models.Date `json:"deadline" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), userID, role, service.CreateOrderInput{
		ProjectID: req.ProjectID,
		StartDate: req.StartDate,
		Deadline:  req.Deadline,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Get обрабатывает GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
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

	orderID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), userID, role, orderID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Process обрабатывает PATCH /orders/:id - действие клиента над заказом.
func (h *OrderHandler) Process(c *gin.Context) {
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

	orderID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.ProcessOrder(c.Request.Context(), userID, role, orderID, req.Action)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListMine обрабатывает GET /orders/my.
// Клиент видит свои заказы как заказчик, фрилансер как исполнитель.
func (h *OrderHandler) ListMine(c *gin.Context) {
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

	var orders []models.Order
	if role == models.RoleFreelancer {
		orders, err = h.orders.ListFreelancerOrders(c.Request.Context(), userID)
	} else {
		orders, err = h.orders.ListClientOrders(c.Request.Context(), userID)
	}
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListCompleted обрабатывает GET /orders/completed - завершённые
// заказы клиента, кандидаты на отзыв.
func (h *OrderHandler) ListCompleted(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	orders, err := h.orders.ListCompletedOrders(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// ListAll обрабатывает GET /admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, err)
		return
	}

	orders, err := h.orders.ListAllOrders(c.Request.Context(), role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
