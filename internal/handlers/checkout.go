package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// StorefrontCheckout handles POST /api/store/checkout
func (h *Handlers) StorefrontCheckout(c *gin.Context) {
	var req models.StorefrontCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.paymentService.StorefrontCheckout(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("storefront checkout created", logging.Fields{
		"comanda_id": result.ComandaID,
		"total":      result.Total,
	})
	c.JSON(http.StatusCreated, result)
}

// PaymentWebhook handles POST /api/webhooks/payment
func (h *Handlers) PaymentWebhook(c *gin.Context) {
	signature := c.GetHeader("X-Payment-Signature")
	if signature == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing signature"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}

	if err := h.paymentService.ProcessWebhook(c.Request.Context(), payload, signature); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
