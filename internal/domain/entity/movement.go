package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementKindReceipt    = "receipt"    // entrada
	MovementKindWithdrawal = "withdrawal" // salida
	MovementKindAdjustment = "adjustment" // ajuste administrativo (valor absoluto)
)

// ValidMovementKind indica si kind es uno de los tipos soportados.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindReceipt, MovementKindWithdrawal, MovementKindAdjustment:
		return true
	}
	return false
}

// Movement registra un evento de stock sobre un producto. Inmutable una vez creado.
// Quantity es la cantidad movida (entrada/salida) o el valor objetivo (ajuste).
type Movement struct {
	ID               string
	ProductID        string
	Kind             string
	Quantity         int64
	PreviousQuantity int64
	NewQuantity      int64
	Reason           string
	Notes            string
	StaffID          string // vacío si no se asoció funcionario
	CreatedBy        string // ID del usuario autenticado
	CreatedAt        time.Time
}

// MovementView es un Movement con los datos de producto y funcionario para listados.
type MovementView struct {
	Movement
	ProductCode string
	ProductName string
	StaffName   string
}
