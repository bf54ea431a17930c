package models

import "testing"

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		name string
		from ComandaStatus
		to   ComandaStatus
		want bool
	}{
		{"pendente to em_preparo", StatusPendente, StatusEmPreparo, true},
		{"pendente to cancelada", StatusPendente, StatusCancelada, true},
		{"pendente to entregue", StatusPendente, StatusEntregue, false},
		{"em_preparo to em_entrega", StatusEmPreparo, StatusEmEntrega, true},
		{"em_preparo to cancelada", StatusEmPreparo, StatusCancelada, true},
		{"em_entrega to entregue", StatusEmEntrega, StatusEntregue, true},
		{"em_entrega to cancelada", StatusEmEntrega, StatusCancelada, false},
		{"em_entrega to pendente", StatusEmEntrega, StatusPendente, false},
		{"entregue is terminal", StatusEntregue, StatusEmEntrega, false},
		{"cancelada is terminal", StatusCancelada, StatusPendente, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStatusTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("ValidStatusTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPaymentMethodValid(t *testing.T) {
	valid := []PaymentMethod{PaymentMethodPix, PaymentMethodCash, PaymentMethodCard, PaymentMethodSplit}
	for _, m := range valid {
		if !m.Valid() {
			t.Errorf("Expected %q to be valid", m)
		}
	}

	if PaymentMethodNone.Valid() {
		t.Error("Expected empty method to be invalid")
	}
	if PaymentMethod("cheque").Valid() {
		t.Error("Expected unknown method to be invalid")
	}
}

func TestRecalculateTotals(t *testing.T) {
	c := &Comanda{
		TaxaEntrega: 5,
		Itens: []ComandaItem{
			{Nome: "Pizza", Valor: 30, Quantity: 2},
			{Nome: "Refrigerante", Valor: 8, Quantity: 1},
		},
	}

	c.RecalculateTotals()

	if c.Subtotal != 68 {
		t.Errorf("Expected subtotal 68, got %v", c.Subtotal)
	}
	if c.Total != 73 {
		t.Errorf("Expected total 73, got %v", c.Total)
	}
}

func TestCanCancel(t *testing.T) {
	for _, status := range []ComandaStatus{StatusPendente, StatusEmPreparo} {
		c := &Comanda{Status: status}
		if !c.CanCancel() {
			t.Errorf("Expected comanda with status %s to be cancellable", status)
		}
	}

	for _, status := range []ComandaStatus{StatusEmEntrega, StatusEntregue, StatusCancelada} {
		c := &Comanda{Status: status}
		if c.CanCancel() {
			t.Errorf("Expected comanda with status %s to not be cancellable", status)
		}
	}
}
