package domain

import "github.com/shopspring/decimal"

// PointAccrualStep is the amount of spend that earns one point.
// One point is worth one currency unit of discount.
var PointAccrualStep = decimal.NewFromInt(50)

// MembershipCard is a customer loyalty point ledger. Points never go
// negative: redemption is rejected up front rather than clamped.
type MembershipCard struct {
	cardNumber string
	points     int
}

func NewMembershipCard(cardNumber string, points int) *MembershipCard {
	if points < 0 {
		points = 0
	}
	return &MembershipCard{cardNumber: cardNumber, points: points}
}

// Accrue adds one point per PointAccrualStep of the amount spent and returns
// the points earned. Non-positive amounts earn nothing.
func (m *MembershipCard) Accrue(amountSpent decimal.Decimal) int {
	if amountSpent.Sign() <= 0 {
		return 0
	}
	earned := int(amountSpent.Div(PointAccrualStep).IntPart())
	m.points += earned
	return earned
}

// Redeem converts points into a discount value at one currency unit per
// point. Requests for a non-positive count or more than the balance fail
// with ErrInvalidRedemption and leave the balance untouched.
func (m *MembershipCard) Redeem(points int) (decimal.Decimal, error) {
	if points <= 0 || points > m.points {
		return decimal.Zero, ErrInvalidRedemption
	}
	m.points -= points
	return decimal.NewFromInt(int64(points)), nil
}

// AvailableDiscount is the maximum discount the balance could cover right
// now. It is a projection only and does not redeem anything.
func (m *MembershipCard) AvailableDiscount() decimal.Decimal {
	return decimal.NewFromInt(int64(m.points))
}

func (m *MembershipCard) Points() int {
	return m.points
}

func (m *MembershipCard) CardNumber() string {
	return m.cardNumber
}
