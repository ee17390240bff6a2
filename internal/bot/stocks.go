package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/dialog"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/infra/sheets"
)

const stockSearchLimit = 20

// showStock: без запроса сводка по низким остаткам, с запросом поиск. Точное имя сразу открывает карточку.
func (b *Bot) showStock(ctx context.Context, chatID int64, query string) {
	recs := b.stock.List()
	query = strings.TrimSpace(query)
	if query == "" {
		b.sendLong(chatID, formatLowList(recs, b.lowStock))
		return
	}
	if r, ok := b.stock.GetByName(query); ok {
		b.clearPrevStep(ctx, chatID)
		mid := b.sendMarkup(chatID, formatStockCard(r, b.lowStock), stockItemKeyboard(r.ID))
		b.saveLastStep(ctx, chatID, dialog.StateIdle, dialog.Payload{}, mid)
		return
	}
	found := searchRecords(recs, query, stockSearchLimit)
	if len(found) == 0 {
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("По запросу «%s» ничего не найдено.", query)))
		return
	}
	b.clearPrevStep(ctx, chatID)
	mid := b.sendMarkup(chatID, fmt.Sprintf("Найдено: %d. Выберите позицию:", len(found)), stockListKeyboard(found))
	b.saveLastStep(ctx, chatID, dialog.StateIdle, dialog.Payload{}, mid)
}

func (b *Bot) showStockItem(ctx context.Context, chatID int64, msgID int, id string) {
	r, ok := b.stock.Get(id)
	if !ok {
		b.editTextAndClear(chatID, msgID, "Позиция не найдена (возможно, удалена).")
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, formatStockCard(r, b.lowStock), stockItemKeyboard(id)))
	b.saveLastStep(ctx, chatID, dialog.StateIdle, dialog.Payload{}, msgID)
}

func (b *Bot) askStockDelta(ctx context.Context, chatID int64, msgID int, id string) {
	r, ok := b.stock.Get(id)
	if !ok {
		b.editTextAndClear(chatID, msgID, "Позиция не найдена (возможно, удалена).")
		return
	}
	text := fmt.Sprintf("%s\nОстаток: %s\nВведите изменение: «+5» приход, «-2,5» расход.",
		r.Name, formatQty(r.Quantity))
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, navKeyboard(false, true)))
	b.saveLastStep(ctx, chatID, dialog.StateStockDelta, dialog.Payload{"id": id}, msgID)
}

func (b *Bot) onStockDelta(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	id, _ := dialog.GetString(st.Payload, "id")
	delta, err := parseDelta(text)
	if err != nil || delta == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Введите число со знаком, например +5 или -2,5."))
		return
	}
	c, err := b.stock.UpdateStock(id, delta)
	if errors.Is(err, inventory.ErrNotFound) {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Позиция не найдена (возможно, удалена)."))
		return
	}
	if err != nil {
		b.log.Error("update stock", "id", id, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось изменить остаток."))
		return
	}
	b.clearPrevStep(ctx, chatID)
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Готово. %s: %s", c.After.Name, formatQty(c.After.Quantity))))
}

func (b *Bot) exportStock(chatID int64) {
	data, err := sheets.Export(b.stock.List())
	if err != nil {
		b.log.Error("export stock", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла."))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102_150405")),
		Bytes: data,
	})
	doc.Caption = "Остатки сырья. Исправьте колонку quantity и загрузите файл через «Загрузить инвентаризацию»."
	b.send(doc)
}

func (b *Bot) startImport(ctx context.Context, chatID int64) {
	b.clearPrevStep(ctx, chatID)
	mid := b.sendMarkup(chatID, "Отправьте Excel-файл с фактическими остатками.", navKeyboard(false, true))
	b.saveLastStep(ctx, chatID, dialog.StateStockImport, dialog.Payload{}, mid)
}

// handleStockImport подгоняет остатки под колонку quantity из файла.
func (b *Bot) handleStockImport(ctx context.Context, chatID int64, data []byte) {
	counted, err := sheets.Read(bytes.NewReader(data))
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось прочитать Excel-файл: "+err.Error()))
		return
	}
	if len(counted) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Файл не содержит данных (нет строк с SKU)."))
		return
	}
	changed, unknown := b.stock.Reconcile(counted)
	b.clearPrevStep(ctx, chatID)
	_ = b.states.Reset(ctx, chatID)

	var bld strings.Builder
	fmt.Fprintf(&bld, "Инвентаризация загружена. Строк: %d, изменено: %d.\n", len(counted), len(changed))
	for _, c := range changed {
		fmt.Fprintf(&bld, "— %s: %s → %s\n", c.After.Name, formatQty(c.Before.Quantity), formatQty(c.After.Quantity))
	}
	if len(unknown) > 0 {
		fmt.Fprintf(&bld, "Неизвестные SKU (пропущены): %s\n", strings.Join(unknown, ", "))
	}
	b.sendLong(chatID, strings.TrimSpace(bld.String()))
}
