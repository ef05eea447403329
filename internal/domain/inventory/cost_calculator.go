package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// ApplyAdditionalValue revaloriza el costo promedio ponderado con un valor adicional (costo en destino)
// sin cambiar la cantidad en stock.
// NuevoCosto = ((StockActual * CostoActual) + ValorAdicional) / StockActual
// Sin stock disponible el costo no cambia: el valor no tiene unidades que lo absorban.
func ApplyAdditionalValue(stockActual, costoActual, valorAdicional decimal.Decimal) decimal.Decimal {
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoActual
	}
	num := stockActual.Mul(costoActual).Add(valorAdicional)
	return num.Div(stockActual)
}
