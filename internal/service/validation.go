package service

import (
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

// ValidateComandaRequest validates the structural fields of a comanda
// create/edit request. Payment amounts are checked later by the settlement
// validation, against the server-computed total.
func ValidateComandaRequest(req *models.ComandaRequest) error {
	if len(req.Itens) == 0 {
		return apperrors.NewValidationError("itens", "adicione pelo menos um produto")
	}
	for _, item := range req.Itens {
		if item.ProductID == "" {
			return apperrors.NewValidationError("itens", "produto inválido")
		}
		if item.Quantity <= 0 {
			return apperrors.NewValidationError("itens", "quantidade deve ser positiva")
		}
	}

	if req.QuantiaPaga != nil && *req.QuantiaPaga < 0 {
		return apperrors.NewValidationError("quantiapaga", "quantia paga inválida")
	}
	if req.ValorCartao < 0 || req.ValorDinheiro < 0 || req.ValorPix < 0 {
		return apperrors.NewValidationError("valores", "valores não podem ser negativos")
	}

	if req.FormaPagamento != models.PaymentMethodNone && !req.FormaPagamento.Valid() {
		return apperrors.NewValidationError("forma_pagamento", "forma de pagamento inválida")
	}

	return nil
}

// ValidateStorefrontRequest validates the public checkout payload.
func ValidateStorefrontRequest(req *models.StorefrontCheckoutRequest) error {
	if req.Cliente == "" {
		return apperrors.NewValidationError("cliente", "informe o nome do cliente")
	}
	if req.Telefone == "" {
		return apperrors.NewValidationError("telefone", "informe o telefone")
	}
	if req.Endereco == "" {
		return apperrors.NewValidationError("endereco", "informe o endereço de entrega")
	}
	if req.Bairro == "" {
		return apperrors.NewValidationError("bairro", "selecione o bairro para entrega")
	}
	if len(req.Itens) == 0 {
		return apperrors.NewValidationError("itens", "adicione pelo menos um produto")
	}
	for _, item := range req.Itens {
		if item.ProductID == "" || item.Quantity <= 0 {
			return apperrors.NewValidationError("itens", "item inválido")
		}
	}
	return nil
}

// ValidateProduct validates a catalog entry.
func ValidateProduct(p *models.Product) error {
	if p.Nome == "" {
		return apperrors.NewValidationError("nome", "informe o nome do produto")
	}
	if p.Valor < 0 {
		return apperrors.NewValidationError("valor", "valor não pode ser negativo")
	}
	return nil
}

// ValidateBairro validates a neighborhood entry.
func ValidateBairro(b *models.Bairro) error {
	if b.Nome == "" {
		return apperrors.NewValidationError("nome", "informe o nome do bairro")
	}
	if b.Taxa < 0 {
		return apperrors.NewValidationError("taxa", "taxa de entrega não pode ser negativa")
	}
	return nil
}
