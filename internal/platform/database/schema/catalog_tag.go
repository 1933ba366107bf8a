package schema

// CatalogTagTable represents the 'catalog.tag' table
type CatalogTagTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogTag is the schema definition for catalog.tag
var CatalogTag = CatalogTagTable{
	Table: "catalog.tag",
	ID:    "id",
	Name:  "name",
}
