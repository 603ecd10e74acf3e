package entity

import "time"

// Tipos de entrada del ledger de stock.
const (
	LedgerTypeSale       = "SALE"       // salida por venta
	LedgerTypePurchase   = "PURCHASE"   // entrada por compra recibida
	LedgerTypeAdjustment = "ADJUSTMENT" // ajuste manual o compensación
	LedgerTypeReturn     = "RETURN"     // devolución de cliente
)

// ValidLedgerType verifica que el tipo sea uno de los soportados.
func ValidLedgerType(t string) bool {
	switch t {
	case LedgerTypeSale, LedgerTypePurchase, LedgerTypeAdjustment, LedgerTypeReturn:
		return true
	}
	return false
}

// StockLedgerEntry es el registro inmutable de un cambio de existencias.
// Append-only: nunca se actualiza ni se borra; una reversión se expresa
// como una entrada compensatoria nueva.
type StockLedgerEntry struct {
	ID        string
	ProductID string
	Delta     int64  // positivo entrada, negativo salida
	Type      string // SALE, PURCHASE, ADJUSTMENT, RETURN
	Reference string // número de factura/orden de origen
	Notes     string
	CreatedBy string // UserID
	CreatedAt time.Time
}
