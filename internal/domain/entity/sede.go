package entity

// Sede representa una de las tiendas físicas. Cada sede tiene su propia base de datos
// y agrupa el stock de varias "headquarters" (bodegas/puntos de venta internos).
type Sede struct {
	Code           string  // ladorada, manizales
	Name           string  // nombre visible
	HeadquarterIDs []int64 // sedes internas cuyo stock y movimientos se suman
}
