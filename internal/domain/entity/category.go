package entity

// Category categoría del catálogo.
type Category struct {
	ID   string
	Name string
}

// Variant variante de producto (sabor, color, talla...).
type Variant struct {
	ID   string
	Name string
}

// Format formato o presentación (unidad, caja, pack...).
type Format struct {
	ID   string
	Name string
}
