package httpapi

import (
	"net/http"
	"strconv"

	"storely-be/internal/order"
	"storely-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Address       string `json:"address" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PlaceOrder converts the caller's cart into an order.
// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	customerID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	placed, err := h.svc.PlaceOrder(c.Request.Context(), order.PlaceOrderParams{
		CustomerID: customerID,
		Shipping: order.ShippingDetails{
			FullName: req.FullName,
			Email:    req.Email,
			Address:  req.Address,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   placed,
	})
}

// GetHistory lists the caller's orders, most recent first.
// GET /api/orders/history
func (h *OrderHandler) GetHistory(c *gin.Context) {
	customerID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return
	}

	entries, err := h.svc.GetOrderHistory(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []order.HistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": entries})
}

// GetDetails returns one enriched row per line item of the order.
// GET /api/orders/:orderID
func (h *OrderHandler) GetDetails(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	rows, err := h.svc.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"items":    rows,
	})
}

// Cancel cancels a pending order. Cancelling an already cancelled order is
// a no-op that still answers 200.
// PUT /api/orders/:orderID/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	cancelled, err := h.svc.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order cancelled successfully",
		"order_id": cancelled.ID,
		"status":   cancelled.Status,
	})
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
