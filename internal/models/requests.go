package models

// ItemRequest is one requested product line; prices are always resolved
// server-side from the catalog.
type ItemRequest struct {
	ProductID string `json:"produto_id"`
	Quantity  int    `json:"quantidade"`
}

// ComandaRequest is the payload for creating or fully re-editing a comanda.
// The payment fields mirror the form: quantiapaga is only meaningful for
// dinheiro, the valor_* triple only for misto.
type ComandaRequest struct {
	Cliente        string        `json:"cliente"`
	Endereco       string        `json:"endereco"`
	Bairro         string        `json:"bairro"`
	FormaPagamento PaymentMethod `json:"forma_pagamento"`
	QuantiaPaga    *float64      `json:"quantiapaga"`
	ValorCartao    float64       `json:"valor_cartao"`
	ValorDinheiro  float64       `json:"valor_dinheiro"`
	ValorPix       float64       `json:"valor_pix"`
	Itens          []ItemRequest `json:"itens"`
}

// StorefrontCheckoutRequest is the public storefront order intake payload.
type StorefrontCheckoutRequest struct {
	Cliente  string        `json:"cliente"`
	Telefone string        `json:"telefone"`
	Endereco string        `json:"endereco"`
	Bairro   string        `json:"bairro"`
	Itens    []ItemRequest `json:"itens"`
}
