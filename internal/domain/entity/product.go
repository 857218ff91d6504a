package entity

import (
	"github.com/shopspring/decimal"
)

// Product producto terminado que se fabrica a partir de su lista de materiales.
type Product struct {
	ID          int64
	Name        string // único
	Description string
	Quantity    int64
	Price       decimal.Decimal
	LocationID  *int64
}

// Location ubicación física donde se guardan productos.
type Location struct {
	ID          int64
	Name        string // único
	Description string
}
