package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/clients"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/settlement"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// PaymentService handles the public storefront checkout flow against the
// hosted payment gateway.
type PaymentService struct {
	gateway     *clients.GatewayClient
	comandaRepo repository.ComandaRepository
	productRepo repository.ProductRepository
	bairroRepo  repository.BairroRepository
	applier     *ComandaService
	config      *config.Config
	logger      *logging.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	gateway *clients.GatewayClient,
	comandaRepo repository.ComandaRepository,
	productRepo repository.ProductRepository,
	bairroRepo repository.BairroRepository,
	applier *ComandaService,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		comandaRepo: comandaRepo,
		productRepo: productRepo,
		bairroRepo:  bairroRepo,
		applier:     applier,
		config:      cfg,
		logger:      logging.New("payment-service"),
	}
}

// CheckoutResult is what the storefront shows the customer after intake.
type CheckoutResult struct {
	ComandaID  string  `json:"comanda_id"`
	Total      float64 `json:"total"`
	PaymentURL string  `json:"payment_url"`
}

// StorefrontCheckout creates a pix-pending comanda from a public storefront
// order and opens a gateway checkout for it.
func (s *PaymentService) StorefrontCheckout(ctx context.Context, req *models.StorefrontCheckoutRequest) (*CheckoutResult, error) {
	if err := ValidateStorefrontRequest(req); err != nil {
		return nil, err
	}

	itens, err := resolveItens(ctx, s.productRepo, req.Itens)
	if err != nil {
		return nil, err
	}
	taxa, err := resolveTaxa(ctx, s.bairroRepo, req.Bairro)
	if err != nil {
		return nil, err
	}

	c := &models.Comanda{
		Cliente:     req.Cliente,
		Endereco:    req.Endereco,
		Bairro:      req.Bairro,
		TaxaEntrega: taxa,
		Itens:       itens,
		PaymentBreakdown: models.PaymentBreakdown{
			FormaPagamento: models.PaymentMethodPix,
		},
	}
	c.RecalculateTotals()

	if err := settlement.ValidateBeforeSave(c); err != nil {
		return nil, err
	}

	if err := s.comandaRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	checkout, err := s.gateway.CreateCheckout(ctx, &clients.CheckoutRequest{
		ComandaID: c.ID,
		Amount:    c.Total,
		Customer:  req.Cliente,
	})
	if err != nil {
		// The comanda stays pendente and unpaid; the shop can retry or
		// settle it manually.
		s.logger.Error("Gateway checkout failed after comanda creation", logging.Fields{
			"comanda_id": c.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.comandaRepo.SetGatewayCheckoutID(ctx, c.ID, checkout.CheckoutID); err != nil {
		return nil, err
	}

	s.logger.Info("Storefront checkout created", logging.Fields{
		"comanda_id":  c.ID,
		"checkout_id": checkout.CheckoutID,
		"total":       c.Total,
	})

	return &CheckoutResult{
		ComandaID:  c.ID,
		Total:      c.Total,
		PaymentURL: checkout.PaymentURL,
	}, nil
}

type webhookPayload struct {
	CheckoutID string `json:"checkout_id"`
	ComandaID  string `json:"comanda_id"`
	Status     string `json:"status"`
}

// ProcessWebhook verifies a gateway webhook signature and applies the
// payment outcome to the comanda.
func (s *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.verifySignature(payload, signature) {
		return apperrors.NewValidationError("signature", "assinatura do webhook inválida")
	}

	var event webhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("invalid webhook payload: %w", err)
	}
	if event.ComandaID == "" || event.CheckoutID == "" {
		return apperrors.NewValidationError("payload", "webhook incompleto")
	}

	confirmed := event.Status == "confirmed" || event.Status == "paid"
	return s.applier.ApplyGatewayPayment(ctx, event.ComandaID, event.CheckoutID, confirmed)
}

func (s *PaymentService) verifySignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.config.Gateway.APIKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
