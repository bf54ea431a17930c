package service

import (
	"context"
	"testing"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

// Mock helpers for testing
type mockProductRepo struct {
	products map[string]*models.Product
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProductRepo) Update(ctx context.Context, p *models.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, id string) error         { return nil }

func (m *mockProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Product, int, error) {
	return nil, 0, nil
}

type mockBairroRepo struct {
	bairros map[string]*models.Bairro
}

func newMockBairroRepo(bairros ...*models.Bairro) *mockBairroRepo {
	m := &mockBairroRepo{bairros: make(map[string]*models.Bairro)}
	for _, b := range bairros {
		m.bairros[b.Nome] = b
	}
	return m
}

func (m *mockBairroRepo) Create(ctx context.Context, b *models.Bairro) error {
	m.bairros[b.Nome] = b
	return nil
}

func (m *mockBairroRepo) GetByNome(ctx context.Context, nome string) (*models.Bairro, error) {
	if b, ok := m.bairros[nome]; ok {
		return b, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockBairroRepo) Update(ctx context.Context, b *models.Bairro) error { return nil }
func (m *mockBairroRepo) Delete(ctx context.Context, id string) error        { return nil }

func (m *mockBairroRepo) List(ctx context.Context) ([]*models.Bairro, error) {
	return nil, nil
}

func TestValidateComandaRequest(t *testing.T) {
	quantia := 50.0
	negativa := -1.0

	tests := []struct {
		name      string
		req       *models.ComandaRequest
		wantField string
	}{
		{
			name:      "no items",
			req:       &models.ComandaRequest{},
			wantField: "itens",
		},
		{
			name: "zero quantity",
			req: &models.ComandaRequest{
				Itens: []models.ItemRequest{{ProductID: "p1", Quantity: 0}},
			},
			wantField: "itens",
		},
		{
			name: "missing product id",
			req: &models.ComandaRequest{
				Itens: []models.ItemRequest{{Quantity: 1}},
			},
			wantField: "itens",
		},
		{
			name: "negative quantia paga",
			req: &models.ComandaRequest{
				Itens:       []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
				QuantiaPaga: &negativa,
			},
			wantField: "quantiapaga",
		},
		{
			name: "negative split amount",
			req: &models.ComandaRequest{
				Itens:       []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
				ValorCartao: -10,
			},
			wantField: "valores",
		},
		{
			name: "unknown payment method",
			req: &models.ComandaRequest{
				Itens:          []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
				FormaPagamento: models.PaymentMethod("cheque"),
			},
			wantField: "forma_pagamento",
		},
		{
			name: "valid with cash payment",
			req: &models.ComandaRequest{
				Itens:          []models.ItemRequest{{ProductID: "p1", Quantity: 2}},
				FormaPagamento: models.PaymentMethodCash,
				QuantiaPaga:    &quantia,
			},
		},
		{
			name: "valid with no method yet",
			req: &models.ComandaRequest{
				Itens: []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComandaRequest(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			ve, ok := apperrors.AsValidation(err)
			if !ok {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, ve.Field)
			}
		})
	}
}

func TestValidateStorefrontRequest(t *testing.T) {
	valid := &models.StorefrontCheckoutRequest{
		Cliente:  "Maria",
		Telefone: "11999990000",
		Endereco: "Rua das Flores, 100",
		Bairro:   "Centro",
		Itens:    []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
	}
	if err := ValidateStorefrontRequest(valid); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}

	missing := &models.StorefrontCheckoutRequest{
		Cliente:  "Maria",
		Telefone: "11999990000",
		Bairro:   "Centro",
		Itens:    []models.ItemRequest{{ProductID: "p1", Quantity: 1}},
	}
	ve, ok := apperrors.AsValidation(ValidateStorefrontRequest(missing))
	if !ok || ve.Field != "endereco" {
		t.Errorf("Expected endereco validation error, got %v", ve)
	}
}

func TestResolveItens(t *testing.T) {
	products := newMockProductRepo(
		&models.Product{ID: "p1", Nome: "Pizza Grande", Valor: 45},
		&models.Product{ID: "p2", Nome: "Guaraná 2L", Valor: 10},
	)

	itens, err := resolveItens(context.Background(), products, []models.ItemRequest{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("Expected items resolved, got %v", err)
	}

	if len(itens) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(itens))
	}

	if itens[0].Nome != "Pizza Grande" || itens[0].Valor != 45 {
		t.Errorf("Unexpected first item: %+v", itens[0])
	}

	if got := Subtotal(itens); got != 75 {
		t.Errorf("Expected subtotal 75, got %v", got)
	}
}

func TestResolveItens_UnknownProduct(t *testing.T) {
	products := newMockProductRepo()

	_, err := resolveItens(context.Background(), products, []models.ItemRequest{
		{ProductID: "ghost", Quantity: 1},
	})

	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if ve.Field != "itens" {
		t.Errorf("Expected field 'itens', got %q", ve.Field)
	}
}

func TestResolveTaxa(t *testing.T) {
	bairros := newMockBairroRepo(&models.Bairro{ID: "b1", Nome: "Centro", Taxa: 5})

	taxa, err := resolveTaxa(context.Background(), bairros, "Centro")
	if err != nil {
		t.Fatalf("Expected taxa resolved, got %v", err)
	}
	if taxa != 5 {
		t.Errorf("Expected taxa 5, got %v", taxa)
	}

	if _, err := resolveTaxa(context.Background(), bairros, "Periferia"); err == nil {
		t.Error("Expected error for unknown bairro")
	}

	if _, err := resolveTaxa(context.Background(), bairros, ""); err == nil {
		t.Error("Expected error for empty bairro")
	}
}
