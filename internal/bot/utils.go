package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"

	"github.com/Spok95/herb-stock/internal/dialog"
	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageLen = 4000

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

// clearPrevStep убрать inline-кнопки у прошлого шага, если он был
func (b *Bot) clearPrevStep(ctx context.Context, chatID int64) {
	st, _ := b.states.Get(ctx, chatID)
	if st == nil || st.Payload == nil {
		return
	}
	if mid, ok := dialog.GetInt(st.Payload, "last_mid"); ok {
		rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, rm))
	}
}

// saveLastStep сохранить id текущего бот-сообщения как «последний»
func (b *Bot) saveLastStep(ctx context.Context, chatID int64, nextState dialog.State, payload dialog.Payload, newMID int) {
	if payload == nil {
		payload = dialog.Payload{}
	}
	payload["last_mid"] = newMID
	if err := b.states.Set(ctx, chatID, nextState, payload); err != nil {
		b.log.Error("save dialog state", "chat", chatID, "err", err)
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// sendMarkup отправляет сообщение и возвращает его id (0 при ошибке).
func (b *Bot) sendMarkup(chatID int64, text string, markup any) int {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = markup
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "err", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) sendLong(chatID int64, text string) {
	for _, part := range splitText(text, maxMessageLen) {
		b.send(tgbotapi.NewMessage(chatID, part))
	}
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func (b *Bot) editTextWithNav(chatID int64, messageID int, text string) {
	kb := navKeyboard(true, true)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	b.send(edit)
}

/*** FORMATTING ***/

func formatQty(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatRecipe(r *bom.Recipe) string {
	var bld strings.Builder
	fmt.Fprintf(&bld, "🧾 %s (на 1 шт.):\n", r.Name)
	for _, c := range r.Components {
		fmt.Fprintf(&bld, "— %s: %s\n", c.RawMaterialName, strconv.FormatFloat(c.Quantity, 'f', -1, 64))
	}
	return strings.TrimSpace(bld.String())
}

func formatPreview(good string, qty int, lines []sales.Line) string {
	var bld strings.Builder
	fmt.Fprintf(&bld, "Продажа: %s × %d\nСписание сырья:\n", good, qty)
	for _, l := range lines {
		mark := "✅"
		if !l.Enough {
			mark = "❌"
		}
		fmt.Fprintf(&bld, "%s %s: нужно %s, есть %s\n", mark, l.Name, formatQty(l.Required), formatQty(l.Available))
	}
	if sales.CanFulfill(lines) {
		bld.WriteString("\nСырья достаточно. Подтвердите продажу.")
	} else {
		bld.WriteString("\nСырья недостаточно. Введите другое количество или отмените.")
	}
	return bld.String()
}

func formatSale(s *sales.Sale) string {
	var bld strings.Builder
	fmt.Fprintf(&bld, "✅ Продажа проведена: %s × %d\n", s.Good, s.Quantity)
	for _, c := range s.Changes {
		fmt.Fprintf(&bld, "— %s: %s → %s\n", c.After.Name, formatQty(c.Before.Quantity), formatQty(c.After.Quantity))
	}
	return strings.TrimSpace(bld.String())
}

// saleErrorText переводит отказ движка в сообщение для пользователя.
func saleErrorText(err error) string {
	var short *inventory.ShortageError
	switch {
	case errors.As(err, &short):
		return fmt.Sprintf("❌ Недостаточно «%s»: нужно %s, есть %s. Ничего не списано.",
			short.Name, short.Required.StringFixed(2), short.Available.StringFixed(2))
	case errors.Is(err, sales.ErrRecipeNotFound):
		return "❌ Рецептура для этого товара не найдена."
	case errors.Is(err, sales.ErrInvalidQuantity):
		return "❌ Количество должно быть целым положительным числом."
	default:
		return "❌ Не удалось провести продажу: " + err.Error()
	}
}

func formatStockCard(r inventory.Record, lowStock float64) string {
	low := ""
	if r.Quantity <= lowStock {
		low = " ⚠️"
	}
	return fmt.Sprintf("%s\nSKU: %s\nКатегория: %s\nОстаток: %s%s\nЦена: %s\nОбновлено: %s",
		r.Name, r.SKU, r.Category, formatQty(r.Quantity), low, formatQty(r.Price),
		r.LastUpdated.Format("02.01.2006 15:04"))
}

// formatLowList список позиций на пороге или ниже, по возрастанию остатка.
func formatLowList(recs []inventory.Record, lowStock float64) string {
	var low []inventory.Record
	for _, r := range recs {
		if r.Quantity <= lowStock {
			low = append(low, r)
		}
	}
	if len(low) == 0 {
		return fmt.Sprintf("Позиций: %d. Всё выше порога %s.", len(recs), formatQty(lowStock))
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	var bld strings.Builder
	fmt.Fprintf(&bld, "Позиций: %d. На пороге %s или ниже: %d\n", len(recs), formatQty(lowStock), len(low))
	for _, r := range low {
		fmt.Fprintf(&bld, "— %s (%s): %s\n", r.Name, r.SKU, formatQty(r.Quantity))
	}
	bld.WriteString("\nПоиск позиции: /stock <название>")
	return bld.String()
}

/*** PARSING ***/

func parseSaleQty(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, sales.ErrInvalidQuantity
	}
	return n, nil
}

// parseDelta принимает «+5», «-2,5», «3».
func parseDelta(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	s = strings.TrimPrefix(s, "+")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("не число: %q", s)
	}
	return f, nil
}

// searchRecords ищет подстроку в названии или SKU без учёта регистра.
func searchRecords(recs []inventory.Record, query string, limit int) []inventory.Record {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	var out []inventory.Record
	for _, r := range recs {
		if strings.Contains(fold.String(r.Name), q) || strings.Contains(fold.String(r.SKU), q) {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// splitText режет текст по строкам на части не длиннее limit байт.
func splitText(s string, limit int) []string {
	if len(s) <= limit {
		return []string{s}
	}
	var parts []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if cur.Len()+len(line) > limit && cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
		for len(line) > limit {
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			parts = append(parts, line[:cut])
			line = line[cut:]
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
