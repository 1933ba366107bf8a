package schema

// CatalogPageTable represents the 'catalog.page' table
type CatalogPageTable struct {
	Table      string
	ID         string
	ChapterID  string
	MangaID    string
	PageNumber string
	ImageURL   string
}

// CatalogPage is the schema definition for catalog.page
var CatalogPage = CatalogPageTable{
	Table:      "catalog.page",
	ID:         "id",
	ChapterID:  "chapterid",
	MangaID:    "mangaid",
	PageNumber: "pagenumber",
	ImageURL:   "imageurl",
}
