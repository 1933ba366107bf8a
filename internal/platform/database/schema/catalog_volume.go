package schema

// CatalogVolumeTable represents the 'catalog.volume' table
type CatalogVolumeTable struct {
	Table        string
	ID           string
	MangaID      string
	VolumeNumber string
	CreatedAt    string
}

// CatalogVolume is the schema definition for catalog.volume
var CatalogVolume = CatalogVolumeTable{
	Table:        "catalog.volume",
	ID:           "id",
	MangaID:      "mangaid",
	VolumeNumber: "volumenumber",
	CreatedAt:    "createdat",
}
