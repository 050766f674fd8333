package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// NotificationItem is a single line item in an order notification.
type NotificationItem struct {
	FileName string
	Material string
	Color    string
	Quantity int
	Price    int64
}

// OrderNotification carries everything needed to announce a new order.
type OrderNotification struct {
	OrderNumber  string
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Items        []NotificationItem
	TotalAmount  int64
	DeliveryType string
	Notes        string
}

// Format renders the notification as a Telegram HTML message.
func (n OrderNotification) Format(now time.Time) string {
	var items []string
	for i, item := range n.Items {
		items = append(items, fmt.Sprintf(
			"%d. 🔧 Custom: %s\n   Material: %s\n   Color: %s\n   Qty: %d\n   Price: ฿%s",
			i+1,
			html.EscapeString(item.FileName),
			html.EscapeString(item.Material),
			html.EscapeString(item.Color),
			item.Quantity,
			formatAmount(item.Price),
		))
	}

	var b strings.Builder
	b.WriteString("🎉 <b>NEW ORDER RECEIVED!</b>\n\n")
	b.WriteString(fmt.Sprintf("📋 <b>Order #%s</b>\n\n", html.EscapeString(n.OrderNumber)))
	b.WriteString("👤 <b>Customer Info:</b>\n")
	b.WriteString(fmt.Sprintf("   Name: %s\n", html.EscapeString(n.CustomerName)))
	b.WriteString(fmt.Sprintf("   Email: %s\n", html.EscapeString(n.Email)))
	b.WriteString(fmt.Sprintf("   Phone: %s\n", html.EscapeString(n.Phone)))
	if n.Address != "" {
		b.WriteString(fmt.Sprintf("   Address: %s\n", html.EscapeString(n.Address)))
	}
	b.WriteString("\n🛒 <b>Order Items:</b>\n")
	b.WriteString(strings.Join(items, "\n\n"))
	b.WriteString(fmt.Sprintf("\n\n💰 <b>Total: ฿%s</b>\n\n", formatAmount(n.TotalAmount)))
	b.WriteString(fmt.Sprintf("🚚 <b>Delivery:</b> %s\n", html.EscapeString(n.DeliveryType)))
	if n.Notes != "" {
		b.WriteString(fmt.Sprintf("📝 <b>Notes:</b> %s\n", html.EscapeString(n.Notes)))
	}
	b.WriteString(fmt.Sprintf("\n⏰ <i>%s</i>", now.Format("2006-01-02 15:04:05")))
	return b.String()
}

// formatAmount renders whole baht with thousands separators.
func formatAmount(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
