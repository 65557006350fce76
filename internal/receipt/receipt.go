// Package receipt renders a completed transaction as fixed-layout text. It
// is a pure view: rendering the same transaction twice yields identical
// output and never mutates the record.
package receipt

import (
	"fmt"
	"strings"

	"github.com/cloud-wave-best-zizon/checkout-service/internal/domain"
)

const divider = "========================================\n"
const rule = "----------------------------------------\n"

// Render produces the receipt text for a transaction. The layout is part of
// the external contract; the surrounding application prints or persists it
// verbatim.
func Render(tx *domain.Transaction) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("          CONVENIENCE STORE\n")
	b.WriteString("             RECEIPT\n")
	b.WriteString(divider)

	fmt.Fprintf(&b, "Date: %s\n", tx.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Transaction ID: %s\n", tx.ID)
	fmt.Fprintf(&b, "Customer: %s\n", tx.CustomerName)
	if tx.MemberCardNumber != "" {
		fmt.Fprintf(&b, "Member Card: %s\n", tx.MemberCardNumber)
		fmt.Fprintf(&b, "Points Balance: %d\n", tx.MemberPoints)
	}

	b.WriteString(divider)
	b.WriteString("ITEMS:\n")
	b.WriteString(rule)
	for _, item := range tx.Items {
		fmt.Fprintf(&b, "%-20s x%-3d  P%8s\n",
			item.Name, item.Quantity, item.LineTotal().StringFixed(2))
	}
	b.WriteString(rule)

	fmt.Fprintf(&b, "Subtotal:               P%8s\n", tx.Subtotal.StringFixed(2))
	if tx.DiscountTotal.Sign() > 0 {
		fmt.Fprintf(&b, "Discount:              -P%8s\n", tx.DiscountTotal.StringFixed(2))
		fmt.Fprintf(&b, "After Discount:         P%8s\n", tx.Subtotal.Sub(tx.DiscountTotal).StringFixed(2))
	}
	fmt.Fprintf(&b, "VAT (12%%):              P%8s\n", tx.VAT.StringFixed(2))

	b.WriteString(divider)
	fmt.Fprintf(&b, "TOTAL:                  P%8s\n", tx.TotalCost.StringFixed(2))
	fmt.Fprintf(&b, "Amount Received:        P%8s\n", tx.Payment.AmountReceived.StringFixed(2))
	fmt.Fprintf(&b, "Change:                 P%8s\n", tx.Payment.Change().StringFixed(2))
	b.WriteString(divider)
	b.WriteString("     Thank you for shopping with us!\n")
	b.WriteString(divider)
	b.WriteString("\n")

	return b.String()
}
