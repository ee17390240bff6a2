package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/dialog"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	states    dialog.Store
	adminChat int64
	engine    *sales.Engine
	stock     *inventory.Ledger
	lowStock  float64
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	states dialog.Store, adminChatID int64,
	engine *sales.Engine, stock *inventory.Ledger, lowStock float64) *Bot {

	return &Bot{
		api: api, log: log, states: states,
		adminChat: adminChatID,
		engine:    engine, stock: stock, lowStock: lowStock,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}
