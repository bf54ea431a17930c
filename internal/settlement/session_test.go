package settlement

import (
	"testing"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
)

func TestSession_PixGoesStraightToReady(t *testing.T) {
	s := NewSession(45.00)
	if s.State() != StateNoMethod {
		t.Fatalf("initial state = %s, want %s", s.State(), StateNoMethod)
	}

	s.SelectMethod(models.PaymentMethodPix)
	if s.State() != StateReady {
		t.Fatalf("state after pix = %s, want %s", s.State(), StateReady)
	}

	b, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if b.FormaPagamento != models.PaymentMethodPix {
		t.Errorf("forma_pagamento = %s, want pix", b.FormaPagamento)
	}
	if s.State() != StateConfirmed {
		t.Errorf("state after confirm = %s, want %s", s.State(), StateConfirmed)
	}
}

func TestSession_CashFlow(t *testing.T) {
	s := NewSession(45.00)
	s.SelectMethod(models.PaymentMethodCash)
	if s.State() != StateAwaitingCashAmount {
		t.Fatalf("state = %s, want %s", s.State(), StateAwaitingCashAmount)
	}
	if s.CanConfirm() {
		t.Error("confirm must be disabled before a tendered amount is entered")
	}

	s.EnterTendered(f(40.00))
	if s.State() != StateAwaitingCashAmount {
		t.Errorf("insufficient tender must not reach Ready, state = %s", s.State())
	}
	if s.Reason() == "" {
		t.Error("insufficient tender must surface a reason")
	}

	s.EnterTendered(f(50.00))
	if s.State() != StateReady {
		t.Fatalf("state = %s, want %s", s.State(), StateReady)
	}
	if s.ChangeDue() == nil || *s.ChangeDue() != 5.00 {
		t.Errorf("change due = %v, want 5.00", s.ChangeDue())
	}

	b, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if b.QuantiaPaga == nil || *b.QuantiaPaga != 50.00 {
		t.Errorf("quantiapaga = %v, want 50.00", b.QuantiaPaga)
	}
	if b.Troco == nil || *b.Troco != 5.00 {
		t.Errorf("troco = %v, want 5.00", b.Troco)
	}
}

func TestSession_SplitFlow(t *testing.T) {
	s := NewSession(100.00)
	s.SelectMethod(models.PaymentMethodSplit)
	if s.State() != StateAwaitingSplitAmounts {
		t.Fatalf("state = %s, want %s", s.State(), StateAwaitingSplitAmounts)
	}

	s.EnterSplit(20, 20, 20)
	if s.State() != StateAwaitingSplitAmounts {
		t.Errorf("short split must not reach Ready, state = %s", s.State())
	}

	s.EnterSplit(40, 50, 30)
	if s.State() != StateReady {
		t.Fatalf("state = %s, want %s", s.State(), StateReady)
	}
	if s.ChangeDue() == nil || *s.ChangeDue() != 20.00 {
		t.Errorf("change due = %v, want 20.00", s.ChangeDue())
	}

	b, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if b.ValorCartao != 40 || b.ValorDinheiro != 50 || b.ValorPix != 30 {
		t.Errorf("split amounts not frozen: %+v", b)
	}
	if b.Troco == nil || *b.Troco != 20.00 {
		t.Errorf("troco = %v, want 20.00", b.Troco)
	}
}

func TestSession_SplitExactNoChange(t *testing.T) {
	s := NewSession(100.00)
	s.SelectMethod(models.PaymentMethodSplit)
	s.EnterSplit(40, 30, 30)
	if s.State() != StateReady {
		t.Fatalf("state = %s, want %s", s.State(), StateReady)
	}
	if s.ChangeDue() != nil {
		t.Errorf("no change should be due, got %v", *s.ChangeDue())
	}
}

func TestSession_MethodSwitchResetsAmounts(t *testing.T) {
	s := NewSession(45.00)
	s.SelectMethod(models.PaymentMethodCash)
	s.EnterTendered(f(50.00))
	if s.State() != StateReady {
		t.Fatal("precondition: cash entry should be Ready")
	}

	s.SelectMethod(models.PaymentMethodSplit)
	if s.State() != StateAwaitingSplitAmounts {
		t.Errorf("switching methods must restart amount entry, state = %s", s.State())
	}
	if s.ChangeDue() != nil {
		t.Error("switching methods must discard the previous change")
	}

	// Re-selecting the same method is also a reset.
	s.EnterSplit(45, 0, 0)
	if s.State() != StateReady {
		t.Fatal("precondition: split entry should be Ready")
	}
	s.SelectMethod(models.PaymentMethodSplit)
	if s.State() != StateAwaitingSplitAmounts {
		t.Errorf("re-selecting the method must reset, state = %s", s.State())
	}
	if s.CanConfirm() {
		t.Error("confirm must be disabled after reset")
	}
}

func TestSession_ConfirmBlockedOutsideReady(t *testing.T) {
	s := NewSession(45.00)
	if _, err := s.Confirm(); err == nil {
		t.Error("confirm with no method must fail")
	}

	s.SelectMethod(models.PaymentMethodCash)
	if _, err := s.Confirm(); err == nil {
		t.Error("confirm while awaiting cash amount must fail")
	}

	s.EnterTendered(f(45.00))
	if _, err := s.Confirm(); err != nil {
		t.Errorf("exact tender is confirmable, got %v", err)
	}

	if _, err := s.Confirm(); err == nil {
		t.Error("confirm is terminal per session")
	}
}

func TestSession_TotalChangeReevaluates(t *testing.T) {
	s := NewSession(45.00)
	s.SelectMethod(models.PaymentMethodCash)
	s.EnterTendered(f(50.00))
	if s.State() != StateReady {
		t.Fatal("precondition failed")
	}

	// Another item pushed the total above the tendered amount.
	s.SetTotal(60.00)
	if s.State() != StateAwaitingCashAmount {
		t.Errorf("raised total must drop back to amount entry, state = %s", s.State())
	}

	s.SetTotal(40.00)
	if s.State() != StateReady {
		t.Errorf("lowered total must re-enable confirm, state = %s", s.State())
	}
	if s.ChangeDue() == nil || *s.ChangeDue() != 10.00 {
		t.Errorf("change due = %v, want 10.00", s.ChangeDue())
	}
}

func TestResumeSession_RoundTrip(t *testing.T) {
	c := &models.Comanda{
		Endereco:    "Rua A, 1",
		Bairro:      "Centro",
		TaxaEntrega: 5,
		Itens:       []models.ComandaItem{{ProductID: "p1", Nome: "Suco", Valor: 40, Quantity: 1}},
	}
	c.RecalculateTotals()
	c.FormaPagamento = models.PaymentMethodSplit
	c.ValorCartao = 20
	c.ValorDinheiro = 25
	c.ValorPix = 0

	s := ResumeSession(c)
	if s.State() != StateReady {
		t.Fatalf("resumed state = %s, want %s", s.State(), StateReady)
	}

	b, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if b.FormaPagamento != c.FormaPagamento ||
		b.ValorCartao != c.ValorCartao ||
		b.ValorDinheiro != c.ValorDinheiro ||
		b.ValorPix != c.ValorPix {
		t.Errorf("resume must reproduce the persisted amounts, got %+v", b)
	}
}

func TestResumeSession_NoMethodStartsFresh(t *testing.T) {
	c := &models.Comanda{Endereco: "Rua A, 1", Bairro: "Centro"}
	c.RecalculateTotals()

	s := ResumeSession(c)
	if s.State() != StateNoMethod {
		t.Errorf("state = %s, want %s", s.State(), StateNoMethod)
	}
}
