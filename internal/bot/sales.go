package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/dialog"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

// startSale показывает список товаров; при editMsgID правит прошлый шаг.
func (b *Bot) startSale(ctx context.Context, chatID int64, editMsgID *int) {
	names := b.engine.Names()
	if len(names) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Нет ни одной рецептуры."))
		return
	}
	text := "Выберите товар:"
	kb := goodsKeyboard(names)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		b.saveLastStep(ctx, chatID, dialog.StateIdle, dialog.Payload{}, *editMsgID)
		return
	}
	b.clearPrevStep(ctx, chatID)
	mid := b.sendMarkup(chatID, text, kb)
	b.saveLastStep(ctx, chatID, dialog.StateIdle, dialog.Payload{}, mid)
}

func (b *Bot) onSaleGood(ctx context.Context, chatID int64, msgID int, idx string) {
	names := b.engine.Names()
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(names) {
		b.editTextAndClear(chatID, msgID, "Товар не найден, начните заново: /sale")
		return
	}
	b.askSaleQty(ctx, chatID, msgID, names[i])
}

func (b *Bot) askSaleQty(ctx context.Context, chatID int64, msgID int, good string) {
	text := fmt.Sprintf("Товар: %s\nВведите количество проданных единиц (целое число):", good)
	b.editTextWithNav(chatID, msgID, text)
	b.saveLastStep(ctx, chatID, dialog.StateSaleQty, dialog.Payload{"good": good}, msgID)
}

func (b *Bot) onSaleQty(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	good, ok := dialog.GetString(st.Payload, "good")
	if !ok {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Сессия устарела, начните заново: /sale"))
		return
	}
	qty, err := parseSaleQty(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Введите целое положительное число."))
		return
	}
	lines, err := b.engine.Preview(good, qty)
	if err != nil {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, saleErrorText(err)))
		return
	}

	b.clearPrevStep(ctx, chatID)
	preview := formatPreview(good, qty, lines)
	if !sales.CanFulfill(lines) {
		mid := b.sendMarkup(chatID, preview, navKeyboard(true, true))
		b.saveLastStep(ctx, chatID, dialog.StateSaleQty, dialog.Payload{"good": good}, mid)
		return
	}
	mid := b.sendMarkup(chatID, preview, saleConfirmKeyboard())
	b.saveLastStep(ctx, chatID, dialog.StateSaleConfirm, dialog.Payload{"good": good, "qty": qty}, mid)
}

func (b *Bot) onSaleConfirm(ctx context.Context, chatID int64, msgID int) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateSaleConfirm {
		b.editTextAndClear(chatID, msgID, "Эта продажа уже обработана или отменена.")
		return
	}
	good, _ := dialog.GetString(st.Payload, "good")
	qty, _ := dialog.GetInt(st.Payload, "qty")
	_ = b.states.Reset(ctx, chatID)

	sale, err := b.engine.RecordSale(ctx, good, qty)
	if err != nil {
		b.editTextAndClear(chatID, msgID, saleErrorText(err))
		return
	}
	b.editTextAndClear(chatID, msgID, formatSale(sale))
}

func (b *Bot) showRecipes(chatID int64) {
	var text string
	for _, n := range b.engine.Names() {
		r, ok := b.engine.Recipe(n)
		if !ok {
			continue
		}
		text += formatRecipe(r) + "\n\n"
	}
	if text == "" {
		text = "Нет ни одной рецептуры."
	}
	b.sendLong(chatID, text)
}
