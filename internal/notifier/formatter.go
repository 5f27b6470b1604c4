package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"CryptoDash/internal/display"
)

// FormatDashboard formats all panels into a Telegram HTML message.
func FormatDashboard(views []display.View, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Crypto Dashboard</b> | %s\n", now.Format("2006-01-02 15:04")))
	for _, v := range views {
		b.WriteString("\n")
		b.WriteString(FormatPanel(v))
	}
	b.WriteString("\n<i>Buy/sell split is simulated (60/40 of 24h volume).</i>")
	return b.String()
}

// FormatPanel formats one panel as a few lines of text.
func FormatPanel(v display.View) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b> (%s): %s\n", html.EscapeString(v.Name), html.EscapeString(v.Symbol), v.Price))
	if !v.Loaded {
		b.WriteString("  waiting for first quote\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", v.Trend.Glyph(), v.Headline()))
	b.WriteString(fmt.Sprintf("  24h Volume: %s\n", v.Volume))
	b.WriteString(fmt.Sprintf("  Buy Ratio: %s\n", v.BuyShare))
	return b.String()
}
