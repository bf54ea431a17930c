package settlement

import (
	"strings"
	"testing"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

func f(v float64) *float64 { return &v }

func TestComputeChange(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		tendered   *float64
		wantValid  bool
		wantChange float64
	}{
		{"tendered above total", 45.00, f(50.00), true, 5.00},
		{"tendered equals total", 45.00, f(45.00), true, 0},
		{"tendered below total", 45.00, f(40.00), false, 0},
		{"no tender info yet", 45.00, nil, false, 0},
		{"zero total zero tendered", 0, f(0), true, 0},
		{"negative tendered", 10.00, f(-1), false, 0},
		{"fractional change", 19.90, f(50.00), true, 30.10},
		{"float noise rounds to 2 decimals", 0.10, f(0.30), true, 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeChange(tt.total, tt.tendered)
			if res.Valid != tt.wantValid {
				t.Fatalf("ComputeChange(%v, %v).Valid = %v, want %v",
					tt.total, tt.tendered, res.Valid, tt.wantValid)
			}
			if res.Valid && res.Change != tt.wantChange {
				t.Errorf("change = %v, want %v", res.Change, tt.wantChange)
			}
			if !res.Valid && res.Reason == "" {
				t.Error("invalid result must carry a reason")
			}
		})
	}
}

func TestComputeChange_InsufficientReason(t *testing.T) {
	res := ComputeChange(45.00, f(40.00))
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if res.Reason != "quantia paga deve ser maior ou igual a R$ 45.00" {
		t.Errorf("unexpected reason: %q", res.Reason)
	}
}

func TestComputeSplitSettlement(t *testing.T) {
	tests := []struct {
		name          string
		total         float64
		card, cash, pix float64
		wantValid     bool
		wantShortfall float64
		wantOwed      float64
		wantChange    float64
	}{
		{"exact three-way split", 100, 40, 30, 30, true, 0, 30, 0},
		{"cash overpays remainder", 100, 40, 50, 30, true, 0, 30, 20},
		{"sum below total", 100, 20, 20, 20, false, 40, 0, 0},
		{"card and pix cover everything", 100, 60, 10, 50, true, 0, 0, 10},
		{"cash only split", 50, 0, 80, 0, true, 0, 50, 30},
		{"no cash no change", 100, 70, 0, 30, true, 0, 0, 0},
		{"absent components are zero", 10, 0, 0, 0, false, 10, 0, 0},
		{"negative component coerced to zero", 50, -10, 60, 0, true, 0, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ComputeSplitSettlement(tt.total, tt.card, tt.cash, tt.pix)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (result %+v)", res.Valid, tt.wantValid, res)
			}
			if !res.Valid {
				if res.Shortfall != tt.wantShortfall {
					t.Errorf("shortfall = %v, want %v", res.Shortfall, tt.wantShortfall)
				}
				if res.Reason == "" {
					t.Error("invalid result must carry a reason")
				}
				return
			}
			if res.OwedInCash != tt.wantOwed {
				t.Errorf("owed in cash = %v, want %v", res.OwedInCash, tt.wantOwed)
			}
			if res.Change != tt.wantChange {
				t.Errorf("change = %v, want %v", res.Change, tt.wantChange)
			}
		})
	}
}

func TestComputeSplitSettlement_ShortfallReason(t *testing.T) {
	res := ComputeSplitSettlement(100, 20, 20, 20)
	if !strings.Contains(res.Reason, "40.00") {
		t.Errorf("shortfall reason should surface the missing amount: %q", res.Reason)
	}
}

func validComanda() *models.Comanda {
	c := &models.Comanda{
		Cliente:     "João",
		Endereco:    "Rua das Flores, 12",
		Bairro:      "Centro",
		TaxaEntrega: 5.00,
		Itens: []models.ComandaItem{
			{ProductID: "p1", Nome: "Refrigerante 2L", Valor: 20.00, Quantity: 2},
		},
	}
	c.RecalculateTotals()
	return c
}

func TestValidateBeforeSave(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.Comanda)
		wantField string
	}{
		{
			"missing bairro",
			func(c *models.Comanda) { c.Bairro = "" },
			"bairro",
		},
		{
			"missing address",
			func(c *models.Comanda) { c.Endereco = "" },
			"endereco",
		},
		{
			"missing payment method",
			func(c *models.Comanda) {},
			"forma_pagamento",
		},
		{
			"insufficient cash",
			func(c *models.Comanda) {
				c.FormaPagamento = models.PaymentMethodCash
				c.QuantiaPaga = f(40.00)
			},
			"quantiapaga",
		},
		{
			"cash without tendered amount",
			func(c *models.Comanda) {
				c.FormaPagamento = models.PaymentMethodCash
			},
			"quantiapaga",
		},
		{
			"insufficient split",
			func(c *models.Comanda) {
				c.FormaPagamento = models.PaymentMethodSplit
				c.ValorCartao = 10
				c.ValorDinheiro = 10
				c.ValorPix = 10
			},
			"valores",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validComanda()
			tt.mutate(c)

			err := ValidateBeforeSave(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := apperrors.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateBeforeSave_CashDerivesTroco(t *testing.T) {
	c := validComanda() // total 45.00
	c.FormaPagamento = models.PaymentMethodCash
	c.QuantiaPaga = f(50.00)

	if err := ValidateBeforeSave(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Troco == nil || *c.Troco != 5.00 {
		t.Errorf("troco = %v, want 5.00", c.Troco)
	}
	if c.ValorCartao != 0 || c.ValorDinheiro != 0 || c.ValorPix != 0 {
		t.Error("split fields must be cleared for a cash payment")
	}
}

func TestValidateBeforeSave_CashExactTender(t *testing.T) {
	c := validComanda()
	c.FormaPagamento = models.PaymentMethodCash
	c.QuantiaPaga = f(45.00)

	if err := ValidateBeforeSave(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Troco == nil || *c.Troco != 0 {
		t.Errorf("exact tender must record troco 0, got %v", c.Troco)
	}
}

func TestValidateBeforeSave_SplitDerivesTroco(t *testing.T) {
	c := validComanda()
	c.Itens = []models.ComandaItem{{ProductID: "p1", Nome: "Cerveja", Valor: 95.00, Quantity: 1}}
	c.RecalculateTotals() // total 100.00
	c.FormaPagamento = models.PaymentMethodSplit
	c.ValorCartao = 40
	c.ValorDinheiro = 50
	c.ValorPix = 30

	if err := ValidateBeforeSave(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Troco == nil || *c.Troco != 20.00 {
		t.Errorf("troco = %v, want 20.00", c.Troco)
	}
	if c.QuantiaPaga != nil {
		t.Error("quantiapaga must be cleared for a split payment")
	}
}

func TestValidateBeforeSave_SplitNoChangeOmitsTroco(t *testing.T) {
	c := validComanda()
	c.Itens = []models.ComandaItem{{ProductID: "p1", Nome: "Cerveja", Valor: 95.00, Quantity: 1}}
	c.RecalculateTotals()
	c.FormaPagamento = models.PaymentMethodSplit
	c.ValorCartao = 40
	c.ValorDinheiro = 30
	c.ValorPix = 30

	if err := ValidateBeforeSave(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Troco != nil {
		t.Errorf("troco should be absent when no change is due, got %v", *c.Troco)
	}
}

func TestValidateBeforeSave_PixClearsAmounts(t *testing.T) {
	c := validComanda()
	c.FormaPagamento = models.PaymentMethodPix
	c.QuantiaPaga = f(99)
	c.ValorCartao = 10

	if err := ValidateBeforeSave(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.QuantiaPaga != nil || c.Troco != nil || c.ValorCartao != 0 {
		t.Error("pix payment must not carry tender amounts")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{5.004, 5.00},
		{5.005, 5.01},
		{0.1 + 0.2, 0.30},
		{-1.005, -1.01},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
