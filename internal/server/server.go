package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/handlers"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

type Server struct {
	config         *config.Config
	router         *gin.Engine
	httpServer     *http.Server
	handlers       *handlers.Handlers
	healthHandlers *handlers.HealthHandlers
	logger         *logging.Logger
}

func NewServer(cfg *config.Config, h *handlers.Handlers, health *handlers.HealthHandlers) *Server {
	router := gin.Default()

	s := &Server{
		config:         cfg,
		router:         router,
		handlers:       h,
		healthHandlers: health,
		logger:         logging.New("server"),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandlers.Health)
	s.router.GET("/ready", s.healthHandlers.Ready)
	s.router.GET("/metrics", handlers.Metrics())

	api := s.router.Group("/api")
	{
		api.POST("/comandas", s.handlers.CreateComanda)
		api.GET("/comandas", s.handlers.ListComandas)
		api.GET("/comandas/:id", s.handlers.GetComanda)
		api.PUT("/comandas/:id", s.handlers.UpdateComanda)
		api.DELETE("/comandas/:id", s.handlers.DeleteComanda)
		api.POST("/comandas/:id/status", s.handlers.UpdateComandaStatus)
		api.POST("/comandas/:id/pago", s.handlers.SetComandaPago)
		api.POST("/comandas/:id/motoboy", s.handlers.AssignMotoboy)

		api.POST("/settlement/preview", s.handlers.PreviewSettlement)

		api.POST("/products", s.handlers.CreateProduct)
		api.GET("/products", s.handlers.ListProducts)
		api.GET("/products/:id", s.handlers.GetProduct)
		api.PUT("/products/:id", s.handlers.UpdateProduct)
		api.DELETE("/products/:id", s.handlers.DeleteProduct)

		api.POST("/bairros", s.handlers.CreateBairro)
		api.GET("/bairros", s.handlers.ListBairros)
		api.PUT("/bairros/:id", s.handlers.UpdateBairro)
		api.DELETE("/bairros/:id", s.handlers.DeleteBairro)

		api.POST("/motoboys", s.handlers.CreateMotoboy)
		api.GET("/motoboys", s.handlers.ListMotoboys)
		api.GET("/motoboys/:id", s.handlers.GetMotoboy)
		api.PUT("/motoboys/:id", s.handlers.UpdateMotoboy)
		api.DELETE("/motoboys/:id", s.handlers.DeleteMotoboy)
		api.POST("/motoboys/:id/sessions", s.handlers.StartMotoboySession)
		api.POST("/motoboys/:id/sessions/end", s.handlers.EndMotoboySession)
		api.GET("/motoboys/:id/entregas", s.handlers.ListEntregas)

		api.POST("/store/checkout", s.handlers.StorefrontCheckout)
		api.POST("/webhooks/payment", s.handlers.PaymentWebhook)
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", logging.Fields{"addr": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
