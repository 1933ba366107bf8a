package schema

// RelatedMangaTable represents the 'catalog.relatedmanga' table
type RelatedMangaTable struct {
	Table     string
	MangaID   string
	RelatedID string
}

// RelatedManga is the schema definition for catalog.relatedmanga
//
// Relations are stored one-directional; readers union both directions.
var RelatedManga = RelatedMangaTable{
	Table:     "catalog.relatedmanga",
	MangaID:   "mangaid",
	RelatedID: "relatedid",
}
