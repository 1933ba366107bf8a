package schema

// CatalogPainterTable represents the 'catalog.painter' table
type CatalogPainterTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogPainter is the schema definition for catalog.painter
var CatalogPainter = CatalogPainterTable{
	Table: "catalog.painter",
	ID:    "id",
	Name:  "name",
}
