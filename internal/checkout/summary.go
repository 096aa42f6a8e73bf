package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	summaryGreeting = "Hello! I just completed payment for my order:"
	bookingMessage  = "Hello, I would like to schedule an appointment at MBJ EXCLUSIVE"
)

// FormatNaira renders an amount the way the storefront shows prices:
// ₦ sign, thousands separators, and at most two decimals with trailing
// zeros dropped.
func FormatNaira(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole := amount.Truncate(0)
	frac := amount.Sub(whole)

	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + "₦" + b.String()
	if !frac.IsZero() {
		// "0.5" -> ".5"
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}

// BuildSummary is the order message sent to the store after payment.
func BuildSummary(items []Item, total decimal.Decimal, c Customer) string {
	var b strings.Builder
	b.WriteString(summaryGreeting)
	b.WriteString("\n\n")
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(it.Name)
		b.WriteString(" (x")
		b.WriteString(strconv.Itoa(it.Quantity))
		b.WriteString(") - ")
		b.WriteString(FormatNaira(it.Subtotal()))
	}
	b.WriteString("\n\nTotal: ")
	b.WriteString(FormatNaira(total))
	b.WriteString("\n\nName: ")
	b.WriteString(c.Name)
	b.WriteString("\nEmail: ")
	b.WriteString(c.Email)
	b.WriteString("\nPhone: ")
	b.WriteString(c.Phone)
	return b.String()
}

// DeepLink opens a WhatsApp chat with number, prefilled with text.
func DeepLink(number, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + strings.TrimPrefix(number, "+") + "?text=" + escaped
}

func BookingLink(number string) string {
	return DeepLink(number, bookingMessage)
}
