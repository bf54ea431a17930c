package models

import "time"

// PaymentMethod is the forma de pagamento chosen for a comanda.
type PaymentMethod string

const (
	PaymentMethodNone  PaymentMethod = ""
	PaymentMethodPix   PaymentMethod = "pix"
	PaymentMethodCash  PaymentMethod = "dinheiro"
	PaymentMethodCard  PaymentMethod = "cartao"
	PaymentMethodSplit PaymentMethod = "misto"
)

// Valid reports whether m is one of the selectable payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCash, PaymentMethodCard, PaymentMethodSplit:
		return true
	}
	return false
}

type ComandaStatus string

const (
	StatusPendente  ComandaStatus = "pendente"
	StatusEmPreparo ComandaStatus = "em_preparo"
	StatusEmEntrega ComandaStatus = "em_entrega"
	StatusEntregue  ComandaStatus = "entregue"
	StatusCancelada ComandaStatus = "cancelada"
)

var statusTransitions = map[ComandaStatus][]ComandaStatus{
	StatusPendente:  {StatusEmPreparo, StatusCancelada},
	StatusEmPreparo: {StatusEmEntrega, StatusCancelada},
	StatusEmEntrega: {StatusEntregue},
	StatusEntregue:  {},
	StatusCancelada: {},
}

// ValidStatusTransition reports whether a comanda may move from one status
// to another.
func ValidStatusTransition(from, to ComandaStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ComandaItem is one product line on a comanda.
type ComandaItem struct {
	ProductID string  `json:"produto_id"`
	Nome      string  `json:"nome"`
	Valor     float64 `json:"valor"`
	Quantity  int     `json:"quantidade"`
}

// Subtotal is valor * quantidade for this line.
func (i ComandaItem) Subtotal() float64 {
	return i.Valor * float64(i.Quantity)
}

// PaymentBreakdown is the settled payment tuple frozen onto a comanda at
// save time. Troco and the valor_* fields are only meaningful for the
// method that produced them.
type PaymentBreakdown struct {
	FormaPagamento PaymentMethod `json:"forma_pagamento"`
	QuantiaPaga    *float64      `json:"quantiapaga,omitempty"`
	Troco          *float64      `json:"troco,omitempty"`
	ValorCartao    float64       `json:"valor_cartao"`
	ValorDinheiro  float64       `json:"valor_dinheiro"`
	ValorPix       float64       `json:"valor_pix"`
}

// Comanda is an order record: products, address, payment and totals.
type Comanda struct {
	ID                string        `json:"id"`
	Cliente           string        `json:"cliente"`
	Endereco          string        `json:"endereco"`
	Bairro            string        `json:"bairro"`
	TaxaEntrega       float64       `json:"taxa_entrega"`
	Subtotal          float64       `json:"subtotal"`
	Total             float64       `json:"total"`
	Itens             []ComandaItem `json:"itens"`
	PaymentBreakdown
	Pago              bool          `json:"pago"`
	Status            ComandaStatus `json:"status"`
	MotoboyID         *string       `json:"motoboy_id,omitempty"`
	GatewayCheckoutID *string       `json:"gateway_checkout_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// RecalculateTotals rebuilds subtotal and total from the current line items
// and delivery fee. Totals are never mutated independently.
func (c *Comanda) RecalculateTotals() {
	var subtotal float64
	for _, item := range c.Itens {
		subtotal += item.Subtotal()
	}
	c.Subtotal = subtotal
	c.Total = subtotal + c.TaxaEntrega
}

// CanCancel reports whether the comanda may still be cancelled.
func (c *Comanda) CanCancel() bool {
	return c.Status == StatusPendente || c.Status == StatusEmPreparo
}

// ComandaFilter narrows comanda listings.
type ComandaFilter struct {
	Status    *ComandaStatus
	MotoboyID string
	Pago      *bool
	Limit     int
	Offset    int
}
