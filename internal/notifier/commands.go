package notifier

import (
	"strings"
	"time"

	"CryptoDash/internal/display"
)

const helpText = "Available commands:\n• /prices - latest price, trend and volume per asset"

// ViewSource supplies the panels to summarise.
type ViewSource func() []display.View

// Commands answers bot commands from the current dashboard state.
func Commands(views ViewSource) CommandHandler {
	return func(command string) string {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return helpText
		}
		cmd := strings.ToLower(fields[0])
		if i := strings.Index(cmd, "@"); i > 0 {
			cmd = cmd[:i] // "/prices@SomeBot"
		}
		switch cmd {
		case "/prices", "/p":
			return FormatDashboard(views(), time.Now())
		default:
			return helpText
		}
	}
}
