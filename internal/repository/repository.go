package repository

import (
	"context"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
)

// ComandaRepository is the persistence contract for comandas.
type ComandaRepository interface {
	Create(ctx context.Context, c *models.Comanda) error
	GetByID(ctx context.Context, id string) (*models.Comanda, error)
	Update(ctx context.Context, c *models.Comanda) error
	UpdateStatus(ctx context.Context, id string, status models.ComandaStatus) (*models.Comanda, error)
	SetPago(ctx context.Context, id string, pago bool) error
	SetMotoboy(ctx context.Context, id, motoboyID string) error
	SetGatewayCheckoutID(ctx context.Context, id, checkoutID string) error
	List(ctx context.Context, filter *models.ComandaFilter) ([]*models.Comanda, int, error)
	ListByMotoboy(ctx context.Context, motoboyID string, since *models.MotoboySession) ([]*models.Comanda, error)
	Delete(ctx context.Context, id string) error
}

// ComandaCache is the read-through cache contract for comandas.
type ComandaCache interface {
	Get(ctx context.Context, id string) (*models.Comanda, error)
	Set(ctx context.Context, c *models.Comanda) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository is the persistence contract for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string, limit, offset int) ([]*models.Product, int, error)
}

// BairroRepository resolves neighborhoods and their delivery fees.
type BairroRepository interface {
	Create(ctx context.Context, b *models.Bairro) error
	GetByNome(ctx context.Context, nome string) (*models.Bairro, error)
	Update(ctx context.Context, b *models.Bairro) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Bairro, error)
}

// MotoboyRepository is the persistence contract for couriers and their
// work sessions.
type MotoboyRepository interface {
	Create(ctx context.Context, m *models.Motoboy) error
	GetByID(ctx context.Context, id string) (*models.Motoboy, error)
	Update(ctx context.Context, m *models.Motoboy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Motoboy, error)
	StartSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error)
	EndSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error)
	ActiveSession(ctx context.Context, motoboyID string) (*models.MotoboySession, error)
}
