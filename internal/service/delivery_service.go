package service

import (
	"context"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// DeliveryService manages couriers, their work sessions and their delivery
// lists.
type DeliveryService struct {
	motoboyRepo repository.MotoboyRepository
	comandaRepo repository.ComandaRepository
	logger      *logging.Logger
}

// NewDeliveryService creates a new delivery service.
func NewDeliveryService(
	motoboyRepo repository.MotoboyRepository,
	comandaRepo repository.ComandaRepository,
) *DeliveryService {
	return &DeliveryService{
		motoboyRepo: motoboyRepo,
		comandaRepo: comandaRepo,
		logger:      logging.New("delivery-service"),
	}
}

func (s *DeliveryService) CreateMotoboy(ctx context.Context, m *models.Motoboy) error {
	return s.motoboyRepo.Create(ctx, m)
}

func (s *DeliveryService) GetMotoboy(ctx context.Context, id string) (*models.Motoboy, error) {
	return s.motoboyRepo.GetByID(ctx, id)
}

func (s *DeliveryService) UpdateMotoboy(ctx context.Context, m *models.Motoboy) error {
	return s.motoboyRepo.Update(ctx, m)
}

func (s *DeliveryService) DeleteMotoboy(ctx context.Context, id string) error {
	return s.motoboyRepo.Delete(ctx, id)
}

func (s *DeliveryService) ListMotoboys(ctx context.Context) ([]*models.Motoboy, error) {
	return s.motoboyRepo.List(ctx)
}

// StartSession opens a courier's work shift.
func (s *DeliveryService) StartSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error) {
	if _, err := s.motoboyRepo.GetByID(ctx, motoboyID); err != nil {
		return nil, err
	}
	return s.motoboyRepo.StartSession(ctx, motoboyID)
}

// EndSession closes a courier's work shift.
func (s *DeliveryService) EndSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error) {
	return s.motoboyRepo.EndSession(ctx, motoboyID)
}

// Entregas groups a courier's deliveries for the active session, with the
// cash the courier must collect and the troco they must carry.
type Entregas struct {
	Motoboy  *models.Motoboy   `json:"motoboy"`
	Comandas []*models.Comanda `json:"comandas"`
	// TotalAReceber is the cash to collect across the listed deliveries.
	TotalAReceber float64 `json:"total_a_receber"`
	// TrocoNecessario is the change the courier needs to hand back.
	TrocoNecessario float64 `json:"troco_necessario"`
}

// ListEntregas returns the courier's deliveries for the active session.
func (s *DeliveryService) ListEntregas(ctx context.Context, motoboyID string) (*Entregas, error) {
	motoboy, err := s.motoboyRepo.GetByID(ctx, motoboyID)
	if err != nil {
		return nil, err
	}

	session, err := s.motoboyRepo.ActiveSession(ctx, motoboyID)
	if err == apperrors.ErrNotFound {
		// No open session: fall back to the courier's full delivery list.
		session = nil
	} else if err != nil {
		return nil, err
	}

	comandas, err := s.comandaRepo.ListByMotoboy(ctx, motoboyID, session)
	if err != nil {
		return nil, err
	}

	entregas := &Entregas{
		Motoboy:  motoboy,
		Comandas: comandas,
	}
	for _, c := range comandas {
		if c.Pago {
			continue
		}
		switch c.FormaPagamento {
		case models.PaymentMethodCash:
			entregas.TotalAReceber += c.Total
			if c.Troco != nil {
				entregas.TrocoNecessario += *c.Troco
			}
		case models.PaymentMethodSplit:
			entregas.TotalAReceber += c.ValorDinheiro
			if c.Troco != nil {
				entregas.TrocoNecessario += *c.Troco
			}
		}
	}

	return entregas, nil
}
