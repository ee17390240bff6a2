package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/dialog"
)

const helpText = "Команды:\n" +
	"/sale — провести продажу готового товара\n" +
	"/recipes — рецептуры\n" +
	"/stock [название] — остатки сырья\n" +
	"/export — выгрузить остатки в Excel\n" +
	"/import — загрузить инвентаризацию из Excel\n" +
	"/cancel — отменить текущую операцию"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, "Привет! Здесь учитываются остатки сырья и продажи готовых товаров.\n\n"+helpText)
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)
	case "help":
		b.send(tgbotapi.NewMessage(chatID, helpText))
	case "cancel":
		b.clearPrevStep(ctx, chatID)
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Операция отменена."))
	case "sale":
		b.startSale(ctx, chatID, nil)
	case "recipes":
		b.showRecipes(chatID)
	case "stock":
		b.showStock(ctx, chatID, msg.CommandArguments())
	case "export":
		b.exportStock(chatID)
	case "import":
		b.startImport(ctx, chatID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// Нижняя панель
	switch msg.Text {
	case btnSale:
		b.startSale(ctx, chatID, nil)
		return
	case btnStock:
		b.showStock(ctx, chatID, "")
		return
	case btnRecipes:
		b.showRecipes(chatID)
		return
	case btnExport:
		b.exportStock(chatID)
		return
	case btnImport:
		b.startImport(ctx, chatID)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("load dialog state", "chat", chatID, "err", err)
		return
	}

	switch st.State {
	case dialog.StateSaleQty:
		b.onSaleQty(ctx, chatID, st, msg.Text)
	case dialog.StateStockDelta:
		b.onStockDelta(ctx, chatID, st, msg.Text)
	case dialog.StateStockImport:
		if msg.Document == nil {
			b.send(tgbotapi.NewMessage(chatID,
				"Пожалуйста, отправьте Excel-файл (.xlsx), выгруженный через «Выгрузить остатки», с исправленной колонкой quantity."))
			return
		}
		data, err := b.downloadTelegramFile(msg.Document.FileID)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не удалось скачать файл из Telegram: "+err.Error()))
			return
		}
		b.handleStockImport(ctx, chatID, data)
	default:
		if strings.TrimSpace(msg.Text) != "" {
			b.send(tgbotapi.NewMessage(chatID, "Выберите действие на панели или наберите /help"))
		}
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	data := cb.Data
	fromChat := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	// Общая навигация
	if data == "nav:cancel" {
		_ = b.states.Reset(ctx, fromChat)
		b.editTextAndClear(fromChat, msgID, "Операция отменена.")
		_ = b.answerCallback(cb, "Отменено", false)
		return
	}
	if data == "nav:back" {
		st, _ := b.states.Get(ctx, fromChat)
		switch st.State {
		case dialog.StateSaleQty:
			b.startSale(ctx, fromChat, &msgID)
		case dialog.StateSaleConfirm:
			good, _ := dialog.GetString(st.Payload, "good")
			b.askSaleQty(ctx, fromChat, msgID, good)
		default:
			_ = b.states.Reset(ctx, fromChat)
			b.editTextAndClear(fromChat, msgID, "Операция отменена.")
		}
		_ = b.answerCallback(cb, "", false)
		return
	}

	switch {
	case strings.HasPrefix(data, "sale:good:"):
		b.onSaleGood(ctx, fromChat, msgID, strings.TrimPrefix(data, "sale:good:"))
	case data == "sale:confirm":
		b.onSaleConfirm(ctx, fromChat, msgID)
	case strings.HasPrefix(data, "stk:item:"):
		b.showStockItem(ctx, fromChat, msgID, strings.TrimPrefix(data, "stk:item:"))
	case strings.HasPrefix(data, "stk:adj:"):
		b.askStockDelta(ctx, fromChat, msgID, strings.TrimPrefix(data, "stk:adj:"))
	}
	_ = b.answerCallback(cb, "", false)
}
