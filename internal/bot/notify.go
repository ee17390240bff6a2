package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/domain/alerts"
)

// Notifier delivers low-stock alerts to the admin chat. It only needs the
// API client, so it can be wired before the Bot exists.
type Notifier struct {
	api       *tgbotapi.BotAPI
	adminChat int64
}

func NewNotifier(api *tgbotapi.BotAPI, adminChatID int64) *Notifier {
	return &Notifier{api: api, adminChat: adminChatID}
}

func (n *Notifier) NotifyLowStock(_ context.Context, low []alerts.LowStock) error {
	if n.adminChat == 0 || len(low) == 0 {
		return nil
	}
	for _, part := range splitText(formatLowStock(low), maxMessageLen) {
		if _, err := n.api.Send(tgbotapi.NewMessage(n.adminChat, part)); err != nil {
			return fmt.Errorf("send low stock alert: %w", err)
		}
	}
	return nil
}

func formatLowStock(low []alerts.LowStock) string {
	var bld strings.Builder
	bld.WriteString("⚠️ Сырьё заканчивается:\n")
	for _, a := range low {
		fmt.Fprintf(&bld, "— %s (%s): %s → %s, порог %s\n",
			a.Record.Name, a.Record.SKU, formatQty(a.Previous), formatQty(a.Record.Quantity), formatQty(a.Threshold))
	}
	return strings.TrimSpace(bld.String())
}
