package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// goodsKeyboard addresses goods by position: recipe names can exceed the
// 64-byte callback data limit.
func goodsKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	var row []tgbotapi.InlineKeyboardButton
	for i, n := range names {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(n, fmt.Sprintf("sale:good:%d", i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func saleConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Провести продажу", "sale:confirm"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func stockListKeyboard(recs []inventory.Record) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, r := range recs {
		title := fmt.Sprintf("%s — %s", r.Name, formatQty(r.Quantity))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, "stk:item:"+r.ID),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func stockItemKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить остаток", "stk:adj:"+id),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
}

// mainReplyKeyboard Нижняя панель
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnSale)},
			{tgbotapi.NewKeyboardButton(btnStock), tgbotapi.NewKeyboardButton(btnRecipes)},
			{tgbotapi.NewKeyboardButton(btnExport), tgbotapi.NewKeyboardButton(btnImport)},
		},
	}
}

const (
	btnSale    = "Продажа"
	btnStock   = "Остатки"
	btnRecipes = "Рецептуры"
	btnExport  = "Выгрузить остатки"
	btnImport  = "Загрузить инвентаризацию"
)
