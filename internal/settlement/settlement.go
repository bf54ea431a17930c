// Package settlement computes and validates comanda payment breakdowns:
// troco for dinheiro, residual and shortfall for pagamento misto, and the
// pre-save checks that gate persisting a comanda.
package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

// Round2 rounds a currency amount half-up to 2 decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ChangeResult is the outcome of a cash (dinheiro) tender.
type ChangeResult struct {
	Valid  bool    `json:"valid"`
	Change float64 `json:"troco"`
	Reason string  `json:"reason,omitempty"`
}

// ComputeChange computes the troco owed for a cash payment. A nil tendered
// amount means the customer has not entered how much they are paying yet;
// that is invalid, as is any amount below the total. Tendered exactly equal
// to the total is valid with troco 0.
func ComputeChange(total float64, tendered *float64) ChangeResult {
	if total < 0 {
		return ChangeResult{Reason: "total inválido"}
	}
	if tendered == nil {
		return ChangeResult{Reason: insufficientCashReason(total)}
	}
	if *tendered < 0 {
		return ChangeResult{Reason: "quantia paga inválida"}
	}

	t := decimal.NewFromFloat(total)
	paid := decimal.NewFromFloat(*tendered)
	if paid.LessThan(t) {
		return ChangeResult{Reason: insufficientCashReason(total)}
	}

	return ChangeResult{
		Valid:  true,
		Change: paid.Sub(t).Round(2).InexactFloat64(),
	}
}

// SplitResult is the outcome of a pagamento misto across cartão, dinheiro
// and pix.
type SplitResult struct {
	Valid      bool    `json:"valid"`
	Sum        float64 `json:"sum"`
	Shortfall  float64 `json:"shortfall,omitempty"`
	OwedInCash float64 `json:"owed_in_cash"`
	Change     float64 `json:"troco,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// ComputeSplitSettlement settles a split payment. Cartão and pix are applied
// to the total before dinheiro: cash is the only instrument that can return
// change, so it absorbs the remainder. Negative components are coerced to 0
// at this boundary.
func ComputeSplitSettlement(total, card, cash, pix float64) SplitResult {
	t := decimal.NewFromFloat(clampNonNegative(total))
	c := decimal.NewFromFloat(clampNonNegative(card))
	d := decimal.NewFromFloat(clampNonNegative(cash))
	p := decimal.NewFromFloat(clampNonNegative(pix))

	sum := c.Add(d).Add(p)
	if sum.LessThan(t) {
		shortfall := t.Sub(sum).Round(2)
		return SplitResult{
			Sum:       sum.Round(2).InexactFloat64(),
			Shortfall: shortfall.InexactFloat64(),
			Reason:    fmt.Sprintf("faltam R$ %s para completar o pagamento", shortfall.StringFixed(2)),
		}
	}

	owed := t.Sub(c).Sub(p)
	if owed.IsNegative() {
		owed = decimal.Zero
	}
	change := d.Sub(owed)
	if change.IsNegative() {
		change = decimal.Zero
	}

	return SplitResult{
		Valid:      true,
		Sum:        sum.Round(2).InexactFloat64(),
		OwedInCash: owed.Round(2).InexactFloat64(),
		Change:     change.Round(2).InexactFloat64(),
	}
}

// ValidateBeforeSave enforces the payment invariants on a comanda before it
// may be persisted and normalizes the derived fields (troco, tender amounts)
// for the chosen method. On failure it returns a ValidationError with a
// user-facing reason and leaves the comanda unpersistable; nothing is
// partially saved by callers.
func ValidateBeforeSave(c *models.Comanda) error {
	if c.Bairro == "" {
		return apperrors.NewValidationError("bairro", "selecione o bairro para entrega")
	}
	if c.Endereco == "" {
		return apperrors.NewValidationError("endereco", "informe o endereço de entrega")
	}
	if !c.FormaPagamento.Valid() {
		return apperrors.NewValidationError("forma_pagamento", "selecione a forma de pagamento")
	}

	switch c.FormaPagamento {
	case models.PaymentMethodCash:
		res := ComputeChange(c.Total, c.QuantiaPaga)
		if !res.Valid {
			return apperrors.NewValidationError("quantiapaga", res.Reason)
		}
		troco := res.Change
		paga := Round2(*c.QuantiaPaga)
		c.QuantiaPaga = &paga
		c.Troco = &troco
		c.ValorCartao = 0
		c.ValorDinheiro = 0
		c.ValorPix = 0

	case models.PaymentMethodSplit:
		res := ComputeSplitSettlement(c.Total, c.ValorCartao, c.ValorDinheiro, c.ValorPix)
		if !res.Valid {
			return apperrors.NewValidationError("valores", res.Reason)
		}
		c.ValorCartao = Round2(clampNonNegative(c.ValorCartao))
		c.ValorDinheiro = Round2(clampNonNegative(c.ValorDinheiro))
		c.ValorPix = Round2(clampNonNegative(c.ValorPix))
		c.QuantiaPaga = nil
		if res.Change > 0 {
			troco := res.Change
			c.Troco = &troco
		} else {
			c.Troco = nil
		}

	default:
		// pix and cartão assume the full amount is tendered; no extra
		// amounts are carried.
		c.QuantiaPaga = nil
		c.Troco = nil
		c.ValorCartao = 0
		c.ValorDinheiro = 0
		c.ValorPix = 0
	}

	return nil
}

func insufficientCashReason(total float64) string {
	return fmt.Sprintf("quantia paga deve ser maior ou igual a R$ %s",
		decimal.NewFromFloat(total).StringFixed(2))
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
