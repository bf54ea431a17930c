package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/settlement"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// CreateComanda handles POST /api/comandas
func (h *Handlers) CreateComanda(c *gin.Context) {
	var req models.ComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comanda, err := h.comandaService.CreateComanda(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comanda)
}

// GetComanda handles GET /api/comandas/:id
func (h *Handlers) GetComanda(c *gin.Context) {
	comanda, err := h.comandaService.GetComanda(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comanda)
}

// UpdateComanda handles PUT /api/comandas/:id
func (h *Handlers) UpdateComanda(c *gin.Context) {
	var req models.ComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comanda, err := h.comandaService.UpdateComanda(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comanda)
}

// DeleteComanda handles DELETE /api/comandas/:id
func (h *Handlers) DeleteComanda(c *gin.Context) {
	if err := h.comandaService.DeleteComanda(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListComandas handles GET /api/comandas
func (h *Handlers) ListComandas(c *gin.Context) {
	filter := &models.ComandaFilter{}

	if status := c.Query("status"); status != "" {
		s := models.ComandaStatus(status)
		filter.Status = &s
	}
	if motoboyID := c.Query("motoboy_id"); motoboyID != "" {
		filter.MotoboyID = motoboyID
	}
	if pagoStr := c.Query("pago"); pagoStr != "" {
		if pago, err := strconv.ParseBool(pagoStr); err == nil {
			filter.Pago = &pago
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	comandas, total, err := h.comandaService.ListComandas(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comandas": comandas,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// UpdateComandaStatus handles POST /api/comandas/:id/status
func (h *Handlers) UpdateComandaStatus(c *gin.Context) {
	var req struct {
		Status models.ComandaStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comanda, err := h.comandaService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comanda)
}

// SetComandaPago handles POST /api/comandas/:id/pago
func (h *Handlers) SetComandaPago(c *gin.Context) {
	var req struct {
		Pago bool `json:"pago"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.comandaService.SetPago(c.Request.Context(), c.Param("id"), req.Pago); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "pago": req.Pago})
}

// AssignMotoboy handles POST /api/comandas/:id/motoboy
func (h *Handlers) AssignMotoboy(c *gin.Context) {
	var req struct {
		MotoboyID string `json:"motoboy_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comanda, err := h.comandaService.AssignMotoboy(c.Request.Context(), c.Param("id"), req.MotoboyID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comanda)
}

// PreviewSettlement handles POST /api/settlement/preview. It runs the pure
// settlement arithmetic for the order form without touching any record:
// change due for cash, shortfall or change for a split.
func (h *Handlers) PreviewSettlement(c *gin.Context) {
	var req struct {
		Total          float64              `json:"total"`
		FormaPagamento models.PaymentMethod `json:"forma_pagamento"`
		QuantiaPaga    *float64             `json:"quantiapaga"`
		ValorCartao    float64              `json:"valor_cartao"`
		ValorDinheiro  float64              `json:"valor_dinheiro"`
		ValorPix       float64              `json:"valor_pix"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.FormaPagamento {
	case models.PaymentMethodCash:
		c.JSON(http.StatusOK, settlement.ComputeChange(req.Total, req.QuantiaPaga))
	case models.PaymentMethodSplit:
		c.JSON(http.StatusOK, settlement.ComputeSplitSettlement(
			req.Total, req.ValorCartao, req.ValorDinheiro, req.ValorPix))
	case models.PaymentMethodPix, models.PaymentMethodCard:
		c.JSON(http.StatusOK, gin.H{"valid": true})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "selecione a forma de pagamento"})
	}
}
