package notification

import (
	"fmt"
	"strings"

	"github.com/riservarotundo/order-service/internal/order/domain"
)

// Format renders the merchant-facing subject and plain-text body for a stored
// order. Pure function; labels are Italian because the merchant reads them.
func Format(o domain.Order, id string) (subject, body string) {
	subject = fmt.Sprintf("Nuovo ordine #%s — %s x%d", shortID(id), o.ProductName, o.Quantity)

	var b strings.Builder
	fmt.Fprintf(&b, "Nuovo ordine ricevuto\n\n")
	fmt.Fprintf(&b, "ID: %s\n", id)
	fmt.Fprintf(&b, "Prodotto: %s\n", o.ProductName)
	fmt.Fprintf(&b, "Quantità: %d lattine (totale %d L)\n", o.Quantity, o.Liters())
	fmt.Fprintf(&b, "Totale: €%.2f\n\n", o.TotalPrice)
	fmt.Fprintf(&b, "Cliente: %s\n", o.FullName)
	fmt.Fprintf(&b, "Email: %s\n", o.Email)
	fmt.Fprintf(&b, "Telefono: %s\n\n", o.Phone)
	fmt.Fprintf(&b, "Indirizzo:\n%s\n%s %s (%s)\n\n", o.AddressLine, o.PostalCode, o.City, o.Province)
	fmt.Fprintf(&b, "Note: %s\n", orDash(o.Notes))
	fmt.Fprintf(&b, "Newsletter opt-in: %s\n", yesNo(o.NewsletterOptIn))

	return subject, b.String()
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "sì"
	}
	return "no"
}
