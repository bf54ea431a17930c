package settlement

import (
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

// State is the position of one comanda-form payment session.
type State string

const (
	StateNoMethod             State = "no_method"
	StateMethodChosen         State = "method_chosen"
	StateAwaitingCashAmount   State = "awaiting_cash_amount"
	StateAwaitingSplitAmounts State = "awaiting_split_amounts"
	StateReady                State = "ready"
	StateConfirmed            State = "confirmed"
)

// Session tracks one comanda form's payment entry from method selection to
// confirmation. All transitions are synchronous; switching methods discards
// any previously entered amounts.
type Session struct {
	total    float64
	state    State
	method   models.PaymentMethod
	tendered *float64
	card     float64
	cash     float64
	pix      float64
	change   *float64
	reason   string
}

// NewSession starts a session for a new comanda with the given total.
func NewSession(total float64) *Session {
	return &Session{
		total: clampNonNegative(total),
		state: StateNoMethod,
	}
}

// ResumeSession opens a session pre-populated from a persisted comanda, for
// editing. A comanda with a confirmed method resumes at Ready with the saved
// amounts; one without a method resumes at NoMethod.
func ResumeSession(c *models.Comanda) *Session {
	s := NewSession(c.Total)
	if !c.FormaPagamento.Valid() {
		return s
	}

	s.SelectMethod(c.FormaPagamento)
	switch c.FormaPagamento {
	case models.PaymentMethodCash:
		s.EnterTendered(c.QuantiaPaga)
	case models.PaymentMethodSplit:
		s.EnterSplit(c.ValorCartao, c.ValorDinheiro, c.ValorPix)
	}
	return s
}

// SelectMethod chooses (or re-chooses) the payment method. Previously
// entered amounts and change are always discarded, even when re-selecting
// the current method.
func (s *Session) SelectMethod(method models.PaymentMethod) {
	s.tendered = nil
	s.card, s.cash, s.pix = 0, 0, 0
	s.change = nil
	s.reason = ""
	s.method = method

	switch method {
	case models.PaymentMethodPix, models.PaymentMethodCard:
		s.state = StateReady
	case models.PaymentMethodCash:
		s.state = StateAwaitingCashAmount
	case models.PaymentMethodSplit:
		s.state = StateAwaitingSplitAmounts
	default:
		s.method = models.PaymentMethodNone
		s.state = StateNoMethod
	}
}

// EnterTendered records the cash amount handed over. The session only
// reaches Ready once the amount covers the total.
func (s *Session) EnterTendered(tendered *float64) {
	if s.state != StateAwaitingCashAmount && s.state != StateReady || s.method != models.PaymentMethodCash {
		return
	}

	s.tendered = tendered
	res := ComputeChange(s.total, tendered)
	if !res.Valid {
		s.change = nil
		s.reason = res.Reason
		s.state = StateAwaitingCashAmount
		return
	}

	change := res.Change
	s.change = &change
	s.reason = ""
	s.state = StateReady
}

// EnterSplit records the three-way amounts of a pagamento misto. The session
// only reaches Ready once the sum covers the total; when the cash component
// leaves change due, it is recorded before Ready.
func (s *Session) EnterSplit(card, cash, pix float64) {
	if s.state != StateAwaitingSplitAmounts && s.state != StateReady || s.method != models.PaymentMethodSplit {
		return
	}

	s.card = clampNonNegative(card)
	s.cash = clampNonNegative(cash)
	s.pix = clampNonNegative(pix)

	res := ComputeSplitSettlement(s.total, s.card, s.cash, s.pix)
	if !res.Valid {
		s.change = nil
		s.reason = res.Reason
		s.state = StateAwaitingSplitAmounts
		return
	}

	if res.Change > 0 {
		change := res.Change
		s.change = &change
	} else {
		s.change = nil
	}
	s.reason = ""
	s.state = StateReady
}

// SetTotal updates the session total (line items or delivery fee changed)
// and re-evaluates whether the entered amounts still cover it.
func (s *Session) SetTotal(total float64) {
	s.total = clampNonNegative(total)
	switch s.method {
	case models.PaymentMethodCash:
		if s.state == StateReady || s.state == StateAwaitingCashAmount {
			s.EnterTendered(s.tendered)
		}
	case models.PaymentMethodSplit:
		if s.state == StateReady || s.state == StateAwaitingSplitAmounts {
			s.EnterSplit(s.card, s.cash, s.pix)
		}
	}
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Reason returns the user-facing message blocking confirmation, if any.
func (s *Session) Reason() string { return s.reason }

// ChangeDue returns the troco computed for the entered amounts, nil when
// none is due or amounts are incomplete.
func (s *Session) ChangeDue() *float64 { return s.change }

// CanConfirm reports whether the confirm control should be enabled.
func (s *Session) CanConfirm() bool { return s.state == StateReady }

// Confirm freezes the entered amounts into a payment breakdown. It is only
// valid from Ready; the session becomes Confirmed and terminal.
func (s *Session) Confirm() (models.PaymentBreakdown, error) {
	if s.state == StateConfirmed {
		return models.PaymentBreakdown{}, apperrors.NewValidationError("session", "pagamento já confirmado")
	}
	if s.state != StateReady {
		reason := s.reason
		if reason == "" {
			reason = "selecione a forma de pagamento"
		}
		return models.PaymentBreakdown{}, apperrors.NewValidationError("session", reason)
	}

	b := models.PaymentBreakdown{FormaPagamento: s.method}
	switch s.method {
	case models.PaymentMethodCash:
		paga := Round2(*s.tendered)
		troco := *s.change
		b.QuantiaPaga = &paga
		b.Troco = &troco
	case models.PaymentMethodSplit:
		b.ValorCartao = Round2(s.card)
		b.ValorDinheiro = Round2(s.cash)
		b.ValorPix = Round2(s.pix)
		if s.change != nil {
			troco := *s.change
			b.Troco = &troco
		}
	}

	s.state = StateConfirmed
	return b, nil
}
