package schema

// MangaTagTable represents the 'catalog.mangatag' table
type MangaTagTable struct {
	Table   string
	MangaID string
	TagID   string
}

// MangaTag is the schema definition for catalog.mangatag
var MangaTag = MangaTagTable{
	Table:   "catalog.mangatag",
	MangaID: "mangaid",
	TagID:   "tagid",
}
