package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
)

// CreateMotoboy handles POST /api/motoboys
func (h *Handlers) CreateMotoboy(c *gin.Context) {
	var m models.Motoboy
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deliveryService.CreateMotoboy(c.Request.Context(), &m); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GetMotoboy handles GET /api/motoboys/:id
func (h *Handlers) GetMotoboy(c *gin.Context) {
	m, err := h.deliveryService.GetMotoboy(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMotoboy handles PUT /api/motoboys/:id
func (h *Handlers) UpdateMotoboy(c *gin.Context) {
	var m models.Motoboy
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	m.ID = c.Param("id")

	if err := h.deliveryService.UpdateMotoboy(c.Request.Context(), &m); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMotoboy handles DELETE /api/motoboys/:id
func (h *Handlers) DeleteMotoboy(c *gin.Context) {
	if err := h.deliveryService.DeleteMotoboy(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListMotoboys handles GET /api/motoboys
func (h *Handlers) ListMotoboys(c *gin.Context) {
	motoboys, err := h.deliveryService.ListMotoboys(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"motoboys": motoboys})
}

// StartMotoboySession handles POST /api/motoboys/:id/sessions
func (h *Handlers) StartMotoboySession(c *gin.Context) {
	session, err := h.deliveryService.StartSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// EndMotoboySession handles POST /api/motoboys/:id/sessions/end
func (h *Handlers) EndMotoboySession(c *gin.Context) {
	session, err := h.deliveryService.EndSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListEntregas handles GET /api/motoboys/:id/entregas
func (h *Handlers) ListEntregas(c *gin.Context) {
	entregas, err := h.deliveryService.ListEntregas(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entregas)
}
