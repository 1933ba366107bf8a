package schema

// MangaPublisherTable represents the 'catalog.mangapublisher' table
type MangaPublisherTable struct {
	Table       string
	MangaID     string
	PublisherID string
}

// MangaPublisher is the schema definition for catalog.mangapublisher
var MangaPublisher = MangaPublisherTable{
	Table:       "catalog.mangapublisher",
	MangaID:     "mangaid",
	PublisherID: "publisherid",
}
