package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/service"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// Handlers holds all HTTP handlers for the comandas service.
type Handlers struct {
	comandaService  *service.ComandaService
	catalogService  *service.CatalogService
	deliveryService *service.DeliveryService
	paymentService  *service.PaymentService
	config          *config.Config
	logger          *logging.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	comandaService *service.ComandaService,
	catalogService *service.CatalogService,
	deliveryService *service.DeliveryService,
	paymentService *service.PaymentService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		comandaService:  comandaService,
		catalogService:  catalogService,
		deliveryService: deliveryService,
		paymentService:  paymentService,
		config:          cfg,
		logger:          logging.New("handlers"),
	}
}

func handleError(c *gin.Context, err error) {
	if err == apperrors.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if ve, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ve.Message,
			"field": ve.Field,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
