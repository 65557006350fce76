package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecordedEvent is the envelope published to the transaction log
// topic for every completed checkout.
type TransactionRecordedEvent struct {
	EventID       string          `json:"event_id"`
	TransactionID string          `json:"transaction_id"`
	CustomerName  string          `json:"customer_name"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Timestamp     time.Time       `json:"timestamp"`
}
