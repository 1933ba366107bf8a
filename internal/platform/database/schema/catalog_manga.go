package schema

// CatalogMangaTable represents the 'catalog.manga' table
type CatalogMangaTable struct {
	Table         string
	ID            string
	Title         string
	Subtitle      string
	Slug          string
	Description   string
	Type          string
	AgeRating     string
	Status        string
	ReleaseYear   string
	ViewCount     string
	PosterURL     string
	BackgroundURL string
	AuthorID      string
	PainterID     string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogManga is the schema definition for catalog.manga
var CatalogManga = CatalogMangaTable{
	Table:         "catalog.manga",
	ID:            "id",
	Title:         "title",
	Subtitle:      "subtitle",
	Slug:          "slug",
	Description:   "description",
	Type:          "type",
	AgeRating:     "agerating",
	Status:        "status",
	ReleaseYear:   "releaseyear",
	ViewCount:     "viewcount",
	PosterURL:     "posterurl",
	BackgroundURL: "backgroundurl",
	AuthorID:      "authorid",
	PainterID:     "painterid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CatalogMangaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Subtitle, t.Slug, t.Description, t.Type, t.AgeRating,
		t.Status, t.ReleaseYear, t.ViewCount, t.PosterURL, t.BackgroundURL,
		t.AuthorID, t.PainterID, t.CreatedAt, t.UpdatedAt,
	}
}
