package dialog

type State string

const (
	StateIdle State = "idle"

	// Продажа
	StateSaleQty     State = "sale_qty"     // ввод количества для выбранного товара
	StateSaleConfirm State = "sale_confirm" // превью списания, ждём подтверждения

	// Остатки
	StateStockDelta  State = "stock_delta"  // ввод изменения остатка (+/-)
	StateStockImport State = "stock_import" // ожидание Excel с фактическими остатками
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
