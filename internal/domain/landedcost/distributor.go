// Package landedcost contiene los servicios de dominio del costo en destino: construcción de
// líneas de valoración, reparto de líneas base y de gastos individuales, y verificación de
// consistencia de los totales.
package landedcost

import "github.com/shopspring/decimal"

// normalizeScale decimales con que se evalúa value/rounding antes de redondear hacia arriba.
// Absorbe el ruido de divisiones inexactas (ej. 200/3*3 = 200.0000000000000001).
const normalizeScale = 12

// RoundUp redondea value alejándose de cero al múltiplo de rounding (método "UP").
// Con rounding <= 0 devuelve value sin cambios.
func RoundUp(value, rounding decimal.Decimal) decimal.Decimal {
	if !rounding.IsPositive() {
		return value
	}
	steps := value.DivRound(rounding, normalizeScale)
	if steps.IsNegative() {
		steps = steps.Floor()
	} else {
		steps = steps.Ceil()
	}
	return steps.Mul(rounding)
}

// ResidualDistributor redondea fragmentos de un total y los recorta contra lo que falta por
// repartir, de modo que la suma nunca supere el total (ni quede por debajo si es negativo).
// Se usa una instancia por línea de costo: el acumulado no es global.
type ResidualDistributor struct {
	rounding    decimal.Decimal
	total       decimal.Decimal
	distributed decimal.Decimal
}

// NewResidualDistributor crea el distribuidor para una línea con total lineTotal.
func NewResidualDistributor(rounding, lineTotal decimal.Decimal) *ResidualDistributor {
	return &ResidualDistributor{rounding: rounding, total: lineTotal, distributed: decimal.Zero}
}

// Distribute devuelve el fragmento redondeado y recortado, y lo suma al acumulado.
// Sin precisión de redondeo el valor pasa intacto y no se acumula.
func (d *ResidualDistributor) Distribute(raw decimal.Decimal) decimal.Decimal {
	if !d.rounding.IsPositive() {
		return raw
	}
	value := RoundUp(raw, d.rounding)
	remaining := d.total.Sub(d.distributed)
	if d.total.IsPositive() {
		value = decimal.Min(value, remaining)
	} else {
		value = decimal.Max(value, remaining)
	}
	d.distributed = d.distributed.Add(value)
	return value
}

// Distributed suma de los fragmentos entregados hasta ahora.
func (d *ResidualDistributor) Distributed() decimal.Decimal {
	return d.distributed
}
