package schema

// MangaGenreTable represents the 'catalog.mangagenre' table
type MangaGenreTable struct {
	Table   string
	MangaID string
	GenreID string
}

// MangaGenre is the schema definition for catalog.mangagenre
var MangaGenre = MangaGenreTable{
	Table:   "catalog.mangagenre",
	MangaID: "mangaid",
	GenreID: "genreid",
}
