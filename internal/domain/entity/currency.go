package entity

import "github.com/shopspring/decimal"

// Currency moneda con su paso de redondeo (ej. 0.01 para COP/USD con centavos).
// Rounding en cero significa "sin redondeo".
type Currency struct {
	Code     string
	Rounding decimal.Decimal
}

var ten = decimal.NewFromInt(10)

// DecimalPlaces número de decimales implícitos en Rounding (0.01 → 2, 0.05 → 2, 1 → 0).
func (c Currency) DecimalPlaces() int32 {
	if !c.Rounding.IsPositive() {
		return 0
	}
	var places int32
	r := c.Rounding
	for r.LessThan(decimal.NewFromInt(1)) {
		r = r.Mul(ten)
		places++
	}
	return places
}

// Round redondea al múltiplo de Rounding más cercano (mitades se alejan de cero).
func (c Currency) Round(v decimal.Decimal) decimal.Decimal {
	if !c.Rounding.IsPositive() {
		return v
	}
	return v.Div(c.Rounding).Round(0).Mul(c.Rounding)
}

// IsZero indica si v es cero a la precisión de la moneda.
func (c Currency) IsZero(v decimal.Decimal) bool {
	return c.Round(v).IsZero()
}
