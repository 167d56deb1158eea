package httpapi

import (
	"net/http"

	"storely-be/internal/order"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers the back-office order transitions. The routes sit
// behind RequireAdmin in the router.
type AdminHandler struct {
	svc order.Service
}

func NewAdminHandler(svc order.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order to an arbitrary lifecycle status.
// PUT /api/admin/orders/:orderID/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order status updated",
		"order_id": orderID,
		"status":   req.Status,
	})
}

// UpdatePaymentStatus records the payment outcome for an order.
// PUT /api/admin/orders/:orderID/payment-status
func (h *AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	orderID, err := parseOrderID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdatePaymentStatus(c.Request.Context(), orderID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment status updated",
		"order_id":       orderID,
		"payment_status": req.Status,
	})
}
