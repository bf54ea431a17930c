package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
)

// CreateProduct handles POST /api/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.catalogService.CreateProduct(c.Request.Context(), &p); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProduct handles GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	p, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct handles PUT /api/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = c.Param("id")

	if err := h.catalogService.UpdateProduct(c.Request.Context(), &p); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListProducts handles GET /api/products
func (h *Handlers) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	products, total, err := h.catalogService.ListProducts(
		c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// CreateBairro handles POST /api/bairros
func (h *Handlers) CreateBairro(c *gin.Context) {
	var b models.Bairro
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.catalogService.CreateBairro(c.Request.Context(), &b); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBairro handles PUT /api/bairros/:id
func (h *Handlers) UpdateBairro(c *gin.Context) {
	var b models.Bairro
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	b.ID = c.Param("id")

	if err := h.catalogService.UpdateBairro(c.Request.Context(), &b); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBairro handles DELETE /api/bairros/:id
func (h *Handlers) DeleteBairro(c *gin.Context) {
	if err := h.catalogService.DeleteBairro(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListBairros handles GET /api/bairros
func (h *Handlers) ListBairros(c *gin.Context) {
	bairros, err := h.catalogService.ListBairros(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bairros": bairros})
}
