package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table         string
	ID            string
	VolumeID      string
	MangaID       string
	ChapterNumber string
	Title         string
	Slug          string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogChapter is the schema definition for catalog.chapter
//
// MangaID is denormalized from the volume to keep per-manga chapter
// queries join-free.
var CatalogChapter = CatalogChapterTable{
	Table:         "catalog.chapter",
	ID:            "id",
	VolumeID:      "volumeid",
	MangaID:       "mangaid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	Slug:          "slug",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{
		t.ID, t.VolumeID, t.MangaID, t.ChapterNumber, t.Title, t.Slug,
		t.CreatedAt, t.UpdatedAt,
	}
}
