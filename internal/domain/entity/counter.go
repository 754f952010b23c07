package entity

// Nombres de los contadores monotónicos (uno por colección de entidades).
const (
	CounterUser            = "user_id"
	CounterProduct         = "product_id"
	CounterCategory        = "category_id"
	CounterSale            = "sale_id"
	CounterSaleItem        = "saleitem_id"
	CounterStockBatch      = "stockbatch_id"
	CounterProductLog      = "productlog_id"
	CounterRetailerMetrics = "retailermetrics_id"
)

// Counter es la secuencia persistida de una colección. Seq nunca decrece y
// cada incremento se entrega exactamente a un caller.
type Counter struct {
	Name string // clave única, ej. "product_id"
	Seq  int64
}

// CounterInitialValue devuelve el valor inicial de un contador recién creado.
// user_id arranca en 1000 para reservar el rango bajo a cuentas pre-cargadas;
// el resto arranca en 0 (primer ID asignado = 1).
func CounterInitialValue(name string) int64 {
	if name == CounterUser {
		return 1000
	}
	return 0
}
