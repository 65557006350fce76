package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchasedItem is a cart line frozen at checkout time: the name and unit
// price are copies, not references into the catalog.
type PurchasedItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (i PurchasedItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction is the immutable record of one completed checkout. Member
// fields are a snapshot of the card after points were redeemed and accrued;
// they are zero-valued for customers without a card.
type Transaction struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customer_name"`
	MemberCardNumber string          `json:"member_card_number,omitempty"`
	MemberPoints     int             `json:"member_points,omitempty"`
	Items            []PurchasedItem `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountTotal    decimal.Decimal `json:"discount_total"`
	VAT              decimal.Decimal `json:"vat"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Payment          Payment         `json:"payment"`
	Timestamp        time.Time       `json:"timestamp"`
}

// TransactionRecord is the flat per-transaction record handed to the
// external transaction log sink.
type TransactionRecord struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Timestamp    time.Time       `json:"timestamp"`
}

func (t *Transaction) Record() TransactionRecord {
	return TransactionRecord{
		ID:           t.ID,
		CustomerName: t.CustomerName,
		TotalCost:    t.TotalCost,
		Timestamp:    t.Timestamp,
	}
}
