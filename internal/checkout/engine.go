// Package checkout orchestrates a purchase: pricing, payment validation,
// stock commit, point ledger updates, and transaction materialization, in
// that order. Each step before the stock commit is a hard stop that leaves
// cart, inventory, and card exactly as they were.
package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/inventory"
	"github.com/cloud-wave-best-zizon/checkout-service/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty")

// InsufficientPaymentError carries the shortfall between the amount received
// and the computed total.
type InsufficientPaymentError struct {
	Shortfall decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: %s more required", e.Shortfall.StringFixed(2))
}

// Options selects the discounts the customer opted into for one checkout.
// UseMemberPoints both applies the membership discount and redeems the
// covering points.
type Options struct {
	SeniorDiscount  bool
	UseMemberPoints bool
}

// Quote is the priced breakdown of a cart before payment. DiscountTotal is
// the difference between the subtotal and the discounted intermediate
// amount; it is never re-derived elsewhere.
type Quote struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	VAT           decimal.Decimal
	Total         decimal.Decimal
}

type Engine struct {
	inv    *inventory.Inventory
	logger *zap.Logger
}

func NewEngine(inv *inventory.Inventory, logger *zap.Logger) *Engine {
	return &Engine{inv: inv, logger: logger}
}

// Quote prices the cart without mutating anything. Discounts apply in fixed
// order: senior first, then membership, then VAT on the remaining amount.
func (e *Engine) Quote(cart *domain.Cart, card *domain.MembershipCard, opts Options) Quote {
	subtotal := cart.Subtotal()
	discounted := subtotal
	if opts.SeniorDiscount {
		discounted = pricing.ApplySeniorDiscount(discounted)
	}
	if opts.UseMemberPoints && card != nil {
		discounted = pricing.ApplyMembershipDiscount(card.AvailableDiscount(), discounted)
	}
	vat := pricing.VAT(discounted)
	return Quote{
		Subtotal:      subtotal,
		DiscountTotal: subtotal.Sub(discounted),
		VAT:           vat,
		Total:         discounted.Add(vat),
	}
}

// Checkout runs the full purchase state machine for one customer and cart.
// On success it returns the immutable transaction; the caller owns replacing
// the session's cart with a fresh one. On any error nothing has changed.
func (e *Engine) Checkout(customerName string, cart *domain.Cart, card *domain.MembershipCard, amountReceived decimal.Decimal, opts Options) (*domain.Transaction, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	quote := e.Quote(cart, card, opts)

	if amountReceived.LessThan(quote.Total) {
		return nil, &InsufficientPaymentError{Shortfall: quote.Total.Sub(amountReceived)}
	}

	// Snapshot before the commit so recorded items are exactly what was
	// deducted.
	items := cart.Snapshot()

	if err := e.inv.CommitPurchase(cart); err != nil {
		return nil, err
	}

	// Point ledger: redeem first, capped by both the balance and the
	// discount actually granted, then accrue on the final total.
	if card != nil {
		if opts.UseMemberPoints {
			toRedeem := int(quote.DiscountTotal.IntPart())
			if toRedeem > card.Points() {
				toRedeem = card.Points()
			}
			if toRedeem > 0 {
				if _, err := card.Redeem(toRedeem); err != nil {
					// The cap makes this unreachable; a failed redemption
					// must not abort a checkout whose payment validated.
					e.logger.Warn("point redemption skipped",
						zap.String("card_number", card.CardNumber()),
						zap.Int("points_requested", toRedeem),
						zap.Error(err))
				}
			}
		}
		card.Accrue(quote.Total)
	}

	tx := &domain.Transaction{
		ID:            "TXN-" + uuid.NewString(),
		CustomerName:  customerName,
		Items:         items,
		Subtotal:      quote.Subtotal,
		DiscountTotal: quote.DiscountTotal,
		VAT:           quote.VAT,
		TotalCost:     quote.Total,
		Payment:       domain.NewPayment(amountReceived, quote.Total),
		Timestamp:     time.Now(),
	}
	if card != nil {
		tx.MemberCardNumber = card.CardNumber()
		tx.MemberPoints = card.Points()
	}

	e.logger.Info("checkout completed",
		zap.String("transaction_id", tx.ID),
		zap.String("customer", customerName),
		zap.Int("items", len(items)),
		zap.String("total", tx.TotalCost.StringFixed(2)),
		zap.String("change", tx.Payment.Change().StringFixed(2)))

	return tx, nil
}
