package entity

import "time"

// Warehouse bodega de una empresa; destino de las recepciones.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo indica si la bodega existe y es de la empresa. Una bodega ajena se trata como inexistente.
func (w *Warehouse) BelongsTo(companyID string) bool {
	return w != nil && w.CompanyID == companyID
}
