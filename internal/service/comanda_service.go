package service

import (
	"context"
	"fmt"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/metrics"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/settlement"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// EventPublisher publishes comanda lifecycle events.
type EventPublisher interface {
	PublishComandaCreated(ctx context.Context, c *models.Comanda) error
	PublishComandaStatusChanged(ctx context.Context, c *models.Comanda, previous models.ComandaStatus) error
	PublishComandaPaga(ctx context.Context, comandaID string, pago bool) error
}

// Notifier delivers best-effort notifications.
type Notifier interface {
	Notify(ctx context.Context, target, title, message string) error
}

// ComandaService handles comanda business logic.
type ComandaService struct {
	comandaRepo  repository.ComandaRepository
	comandaCache repository.ComandaCache
	productRepo  repository.ProductRepository
	bairroRepo   repository.BairroRepository
	motoboyRepo  repository.MotoboyRepository
	publisher    EventPublisher
	notifier     Notifier
	config       *config.Config
	logger       *logging.Logger
}

// NewComandaService creates a new comanda service.
func NewComandaService(
	comandaRepo repository.ComandaRepository,
	comandaCache repository.ComandaCache,
	productRepo repository.ProductRepository,
	bairroRepo repository.BairroRepository,
	motoboyRepo repository.MotoboyRepository,
	publisher EventPublisher,
	notifier Notifier,
	cfg *config.Config,
) *ComandaService {
	return &ComandaService{
		comandaRepo:  comandaRepo,
		comandaCache: comandaCache,
		productRepo:  productRepo,
		bairroRepo:   bairroRepo,
		motoboyRepo:  motoboyRepo,
		publisher:    publisher,
		notifier:     notifier,
		config:       cfg,
		logger:       logging.New("comanda-service"),
	}
}

// buildComanda resolves catalog prices and the bairro fee, recomputes the
// totals and runs settlement validation. Nothing is persisted on failure.
func (s *ComandaService) buildComanda(ctx context.Context, req *models.ComandaRequest) (*models.Comanda, error) {
	if err := ValidateComandaRequest(req); err != nil {
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
			FormaPagamento: req.FormaPagamento,
			QuantiaPaga:    req.QuantiaPaga,
			ValorCartao:    req.ValorCartao,
			ValorDinheiro:  req.ValorDinheiro,
			ValorPix:       req.ValorPix,
		},
	}
	c.RecalculateTotals()

	if err := settlement.ValidateBeforeSave(c); err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			metrics.SettlementsRejected.WithLabelValues(ve.Field).Inc()
		}
		return nil, err
	}

	return c, nil
}

// CreateComanda validates, settles and persists a new comanda.
func (s *ComandaService) CreateComanda(ctx context.Context, req *models.ComandaRequest) (*models.Comanda, error) {
	s.logger.Info("Creating comanda", logging.Fields{
		"bairro":     req.Bairro,
		"item_count": len(req.Itens),
	})

	c, err := s.buildComanda(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.comandaRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.ComandasCreated.Inc()

	if s.config.Features.EnableComandaCaching {
		if err := s.comandaCache.Set(ctx, c); err != nil {
			s.logger.Error("Failed to cache comanda", logging.Fields{
				"comanda_id": c.ID,
				"error":      err.Error(),
			})
		}
	}

	if s.config.Features.EnableComandaEvents {
		if err := s.publisher.PublishComandaCreated(ctx, c); err != nil {
			s.logger.Error("Failed to publish comanda created event", logging.Fields{
				"comanda_id": c.ID,
				"error":      err.Error(),
			})
		}
	}

	if s.config.Features.EnableNotifications {
		go s.notifyShop(context.Background(), c)
	}

	return c, nil
}

// GetComanda retrieves a comanda by ID, read-through cached.
func (s *ComandaService) GetComanda(ctx context.Context, id string) (*models.Comanda, error) {
	if s.config.Features.EnableComandaCaching {
		if c, err := s.comandaCache.Get(ctx, id); err == nil && c != nil {
			return c, nil
		}
	}

	c, err := s.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Set(ctx, c)
	}
	return c, nil
}

// UpdateComanda performs a full re-edit of a comanda: items, address and
// the payment breakdown are re-entered and re-validated as a whole.
func (s *ComandaService) UpdateComanda(ctx context.Context, id string, req *models.ComandaRequest) (*models.Comanda, error) {
	existing, err := s.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.StatusCancelada {
		return nil, apperrors.NewValidationError("status", "comanda cancelada não pode ser editada")
	}

	c, err := s.buildComanda(ctx, req)
	if err != nil {
		return nil, err
	}

	// Identity and dispatch state survive the re-edit.
	c.ID = existing.ID
	c.Status = existing.Status
	c.Pago = existing.Pago
	c.MotoboyID = existing.MotoboyID
	c.GatewayCheckoutID = existing.GatewayCheckoutID
	c.CreatedAt = existing.CreatedAt

	if err := s.comandaRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Delete(ctx, id)
	}

	s.logger.Info("Comanda updated", logging.Fields{"comanda_id": id})
	return c, nil
}

// UpdateStatus moves a comanda through its delivery lifecycle.
func (s *ComandaService) UpdateStatus(ctx context.Context, id string, status models.ComandaStatus) (*models.Comanda, error) {
	current, err := s.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidStatusTransition(current.Status, status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf(
			"transição de status inválida: %s para %s", current.Status, status))
	}
	if status == models.StatusEmEntrega && current.MotoboyID == nil {
		return nil, apperrors.NewValidationError("motoboy_id", "atribua um motoboy antes de enviar para entrega")
	}

	previous := current.Status
	c, err := s.comandaRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()

	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Delete(ctx, id)
	}

	if s.config.Features.EnableComandaEvents {
		if err := s.publisher.PublishComandaStatusChanged(ctx, c, previous); err != nil {
			s.logger.Error("Failed to publish status change event", logging.Fields{
				"comanda_id": id,
				"error":      err.Error(),
			})
		}
	}

	if s.config.Features.EnableNotifications {
		go s.notifyStatus(context.Background(), c)
	}

	return c, nil
}

// CancelComanda cancels a comanda while that is still allowed.
func (s *ComandaService) CancelComanda(ctx context.Context, id string) (*models.Comanda, error) {
	current, err := s.comandaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.CanCancel() {
		return nil, apperrors.NewValidationError("status", "comanda não pode mais ser cancelada")
	}
	return s.UpdateStatus(ctx, id, models.StatusCancelada)
}

// SetPago toggles the independent paid flag.
func (s *ComandaService) SetPago(ctx context.Context, id string, pago bool) error {
	if err := s.comandaRepo.SetPago(ctx, id, pago); err != nil {
		return err
	}

	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Delete(ctx, id)
	}
	if s.config.Features.EnableComandaEvents {
		if err := s.publisher.PublishComandaPaga(ctx, id, pago); err != nil {
			s.logger.Error("Failed to publish pago event", logging.Fields{
				"comanda_id": id,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

// AssignMotoboy attaches an active courier to a comanda.
func (s *ComandaService) AssignMotoboy(ctx context.Context, id, motoboyID string) (*models.Comanda, error) {
	motoboy, err := s.motoboyRepo.GetByID(ctx, motoboyID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewValidationError("motoboy_id", "motoboy não encontrado")
	}
	if err != nil {
		return nil, err
	}
	if !motoboy.Ativo {
		return nil, apperrors.NewValidationError("motoboy_id", "motoboy inativo")
	}
	if _, err := s.motoboyRepo.ActiveSession(ctx, motoboyID); err == apperrors.ErrNotFound {
		return nil, apperrors.NewValidationError("motoboy_id", "motoboy não está em sessão de trabalho")
	} else if err != nil {
		return nil, err
	}

	if err := s.comandaRepo.SetMotoboy(ctx, id, motoboyID); err != nil {
		return nil, err
	}
	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Delete(ctx, id)
	}

	s.logger.Info("Motoboy assigned", logging.Fields{
		"comanda_id": id,
		"motoboy_id": motoboyID,
	})
	return s.comandaRepo.GetByID(ctx, id)
}

// ListComandas retrieves comandas matching the filter.
func (s *ComandaService) ListComandas(ctx context.Context, filter *models.ComandaFilter) ([]*models.Comanda, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.comandaRepo.List(ctx, filter)
}

// DeleteComanda soft-deletes a comanda.
func (s *ComandaService) DeleteComanda(ctx context.Context, id string) error {
	if err := s.comandaRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.config.Features.EnableComandaCaching {
		s.comandaCache.Delete(ctx, id)
	}
	s.logger.Info("Comanda deleted", logging.Fields{"comanda_id": id})
	return nil
}

// ApplyGatewayPayment marks a storefront comanda paid (or cancels it) based
// on the payment-gateway outcome. Implements events.PaymentApplier.
func (s *ComandaService) ApplyGatewayPayment(ctx context.Context, comandaID, checkoutID string, confirmed bool) error {
	c, err := s.comandaRepo.GetByID(ctx, comandaID)
	if err != nil {
		return err
	}
	if c.GatewayCheckoutID == nil || *c.GatewayCheckoutID != checkoutID {
		s.logger.Warn("Gateway checkout mismatch, ignoring event", logging.Fields{
			"comanda_id":  comandaID,
			"checkout_id": checkoutID,
		})
		return nil
	}

	if !confirmed {
		if c.CanCancel() {
			_, err := s.CancelComanda(ctx, comandaID)
			return err
		}
		return nil
	}

	if err := s.SetPago(ctx, comandaID, true); err != nil {
		return err
	}
	if s.config.Features.EnableNotifications {
		go s.notifyShop(context.Background(), c)
	}
	return nil
}

func (s *ComandaService) notifyShop(ctx context.Context, c *models.Comanda) {
	msg := fmt.Sprintf("Comanda %s: %s, %s - R$ %.2f", c.ID, c.Cliente, c.Bairro, c.Total)
	if err := s.notifier.Notify(ctx, "loja", "Nova comanda", msg); err != nil {
		s.logger.Error("Shop notification failed", logging.Fields{
			"comanda_id": c.ID,
			"error":      err.Error(),
		})
	}
}

func (s *ComandaService) notifyStatus(ctx context.Context, c *models.Comanda) {
	var msg string
	switch c.Status {
	case models.StatusEmPreparo:
		msg = fmt.Sprintf("Seu pedido %s está em preparo.", c.ID)
	case models.StatusEmEntrega:
		msg = fmt.Sprintf("Seu pedido %s saiu para entrega.", c.ID)
	case models.StatusEntregue:
		msg = fmt.Sprintf("Seu pedido %s foi entregue. Obrigado!", c.ID)
	case models.StatusCancelada:
		msg = fmt.Sprintf("Seu pedido %s foi cancelado.", c.ID)
	default:
		return
	}
	if err := s.notifier.Notify(ctx, c.Cliente, "Atualização do pedido", msg); err != nil {
		s.logger.Error("Status notification failed", logging.Fields{
			"comanda_id": c.ID,
			"error":      err.Error(),
		})
	}
}
